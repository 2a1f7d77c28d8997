package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Senior Backend Engineer

Seasoned engineer with 7+ years of experience building APIs.
Previously 3 years experience with frontend work.

Skills: Go (Golang), PostgreSQL, Docker, Kubernetes, AWS, SQL
Shipped React dashboards backed by Node.js services.
`

func extractText(t *testing.T, text string) *Profile {
	t.Helper()
	profile, err := NewExtractor(nil).Extract([]byte(text), "text/plain", "resume.txt")
	require.NoError(t, err)
	return profile
}

// TestExtract_PlainText verifies the full pipeline over a realistic resume.
func TestExtract_PlainText(t *testing.T) {
	profile := extractText(t, sampleResume)

	assert.Contains(t, profile.Skills, "Go")
	assert.Contains(t, profile.Skills, "PostgreSQL")
	assert.Contains(t, profile.Skills, "SQL")
	assert.Contains(t, profile.Skills, "AWS")
	assert.Contains(t, profile.Skills, "React")
	assert.Contains(t, profile.Skills, "Node.js")

	require.NotNil(t, profile.YearsOfExperience)
	assert.Equal(t, 7, *profile.YearsOfExperience)

	require.NotNil(t, profile.Summary)
	assert.True(t, strings.HasPrefix(*profile.Summary, "Jane Doe"))

	assert.Contains(t, profile.TechnologyTags, "backend")
	assert.Contains(t, profile.TechnologyTags, "devops")
}

// TestExtract_Idempotent verifies byte-identical input yields an identical
// profile on every run.
func TestExtract_Idempotent(t *testing.T) {
	first := extractText(t, sampleResume)
	second := extractText(t, sampleResume)

	assert.Equal(t, first.NormalizedText, second.NormalizedText)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.YearsOfExperience, second.YearsOfExperience)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.TechnologyTags, second.TechnologyTags)
}

// TestExtract_UnsupportedFormat verifies an unrecognizable MIME type and
// extension fail with UnsupportedFormatError.
func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := NewExtractor(nil).Extract([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "photo")

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.MimeType)
}

// TestExtract_ExtensionFallback verifies the filename extension resolves the
// format when the MIME type is empty.
func TestExtract_ExtensionFallback(t *testing.T) {
	profile, err := NewExtractor(nil).Extract([]byte("plain resume text"), "", "resume.TXT")
	require.NoError(t, err)
	assert.Equal(t, "plain resume text", profile.NormalizedText)
}

// TestExtract_CorruptPDF verifies a recognized format with undecodable bytes
// fails with ExtractionError carrying the decoder cause.
func TestExtract_CorruptPDF(t *testing.T) {
	_, err := NewExtractor(nil).Extract([]byte("not a pdf at all"), "application/pdf", "resume.pdf")

	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "pdf", extraction.Format)
	assert.Error(t, extraction.Unwrap())
}

// buildDocx assembles a minimal OOXML package around the given paragraphs.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(p)
		body.WriteString("</w:t></w:r></w:p>")
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// TestExtract_Docx verifies text extraction from an OOXML package.
func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t,
		"John Smith",
		"Backend engineer with 5 years of experience",
		"Skills: Python, Django, PostgreSQL",
	)

	profile, err := NewExtractor(nil).Extract(data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	require.NoError(t, err)

	assert.Contains(t, profile.NormalizedText, "John Smith")
	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Django")
	require.NotNil(t, profile.YearsOfExperience)
	assert.Equal(t, 5, *profile.YearsOfExperience)
}

// TestExtract_DocxWithoutDocument verifies a zip without word/document.xml
// fails as an extraction error, not a panic.
func TestExtract_DocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("unrelated.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = NewExtractor(nil).Extract(buf.Bytes(), "", "resume.docx")
	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "docx", extraction.Format)
}

// TestEstimateYears_MaximumRule verifies the maximum of all years mentions
// wins.
func TestEstimateYears_MaximumRule(t *testing.T) {
	profile := extractText(t, "3 years experience with Go. 7+ years of experience overall.")

	require.NotNil(t, profile.YearsOfExperience)
	assert.Equal(t, 7, *profile.YearsOfExperience)
}

// TestEstimateYears_Absent verifies no mention leaves the field nil, never
// zero.
func TestEstimateYears_Absent(t *testing.T) {
	profile := extractText(t, "A resume with no tenure phrasing at all.")
	assert.Nil(t, profile.YearsOfExperience)
}

// TestEstimateYears_SingularNotMatched verifies "1 year experience" does not
// count; only the plural forms do.
func TestEstimateYears_SingularNotMatched(t *testing.T) {
	assert.Nil(t, extractText(t, "1 year experience with Rust.").YearsOfExperience)
	assert.Nil(t, extractText(t, "1 yr of experience.").YearsOfExperience)
}

// TestEstimateYears_Clamped verifies out-of-range mentions clamp to [1,40].
func TestEstimateYears_Clamped(t *testing.T) {
	profile := extractText(t, "I have 99 years of experience.")
	require.NotNil(t, profile.YearsOfExperience)
	assert.Equal(t, 40, *profile.YearsOfExperience)
}

// TestEstimateYears_CaseAndVariants verifies yrs/years and casing variants.
func TestEstimateYears_CaseAndVariants(t *testing.T) {
	cases := map[string]int{
		"12 YEARS EXPERIENCE":      12,
		"4 yrs experience":         4,
		"8+ years of experience":   8,
		"2 Years Of Experience":    2,
		"over 6 yrs of experience": 6,
	}
	for text, want := range cases {
		profile := extractText(t, text)
		require.NotNil(t, profile.YearsOfExperience, "text %q", text)
		assert.Equal(t, want, *profile.YearsOfExperience, "text %q", text)
	}
}

// TestBuildSummary_Truncation verifies a long leading section truncates to
// exactly 500 characters.
func TestBuildSummary_Truncation(t *testing.T) {
	long := strings.Repeat("word ", 50) // 250 chars per line
	text := long + "\n" + long + "\n" + long + "\nfour\nfive\nsix\nseven"

	profile := extractText(t, text)
	require.NotNil(t, profile.Summary)
	assert.Len(t, *profile.Summary, 500)
}

// TestBuildSummary_MultibyteBoundary verifies truncation never splits a rune,
// so the summary stays valid UTF-8.
func TestBuildSummary_MultibyteBoundary(t *testing.T) {
	text := strings.Repeat("a", 499) + "é and more text past the cap"

	profile := extractText(t, text)
	require.NotNil(t, profile.Summary)
	assert.True(t, utf8.ValidString(*profile.Summary))
	assert.LessOrEqual(t, len(*profile.Summary), 500)
	assert.Equal(t, strings.Repeat("a", 499), *profile.Summary)
}

// TestBuildSummary_FirstSixLines verifies only the first six lines feed the
// summary.
func TestBuildSummary_FirstSixLines(t *testing.T) {
	profile := extractText(t, "one\ntwo\nthree\nfour\nfive\nsix\nseven")

	require.NotNil(t, profile.Summary)
	assert.Equal(t, "one two three four five six", *profile.Summary)
}

// TestSkills_SetSemantics verifies repeated mentions yield one entry, in
// dictionary order.
func TestSkills_SetSemantics(t *testing.T) {
	profile := extractText(t, "react react react and more React, plus aws. AWS again.")

	count := 0
	for _, s := range profile.Skills {
		if s == "React" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, profile.Skills, "AWS")
}

// TestTags_Independent verifies a resume can carry several tags and none when
// nothing matches.
func TestTags_Independent(t *testing.T) {
	multi := extractText(t, "Built backend APIs and React frontend screens on Kubernetes.")
	assert.Contains(t, multi.TechnologyTags, "backend")
	assert.Contains(t, multi.TechnologyTags, "frontend")
	assert.Contains(t, multi.TechnologyTags, "devops")

	none := extractText(t, "Shepherd with a decade of pastoral work.")
	assert.Empty(t, none.TechnologyTags)
}

// TestExtract_CustomDictionary verifies the dictionary is configuration, not
// hard-coded behavior.
func TestExtract_CustomDictionary(t *testing.T) {
	dict := &Dictionary{
		Skills: []SkillEntry{{Canonical: "COBOL", Keywords: []string{"cobol"}}},
		Tags:   []TagEntry{{Name: "mainframe", Keywords: []string{"cobol", "z/os"}}},
	}

	profile, err := NewExtractor(dict).Extract([]byte("COBOL on z/OS"), "text/plain", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"COBOL"}, profile.Skills)
	assert.Equal(t, []string{"mainframe"}, profile.TechnologyTags)
}
