package extract

import (
	"encoding/json"
	"fmt"
	"os"
)

// SkillEntry maps a canonical skill display name to the lowercase keywords
// that detect it in resume text.
type SkillEntry struct {
	Canonical string   `json:"canonical"`
	Keywords  []string `json:"keywords"`
}

// TagEntry maps a technology tag to the lowercase keywords that trigger it.
// Tags are independent; a resume may receive several.
type TagEntry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Dictionary holds the detection tables used by the extractor. It is plain
// data so deployments can extend skill coverage without touching extraction
// logic.
type Dictionary struct {
	Skills []SkillEntry `json:"skills"`
	Tags   []TagEntry   `json:"tags"`
}

// DefaultDictionary returns the built-in skill table and tag taxonomy.
// Ordering matters: detected skills are reported in dictionary order.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		Skills: []SkillEntry{
			{Canonical: "JavaScript", Keywords: []string{"javascript"}},
			{Canonical: "TypeScript", Keywords: []string{"typescript"}},
			{Canonical: "Python", Keywords: []string{"python"}},
			{Canonical: "Java", Keywords: []string{"java"}},
			{Canonical: "Go", Keywords: []string{"golang"}},
			{Canonical: "C#", Keywords: []string{"c#", ".net"}},
			{Canonical: "Ruby", Keywords: []string{"ruby"}},
			{Canonical: "PHP", Keywords: []string{"php"}},
			{Canonical: "Swift", Keywords: []string{"swift"}},
			{Canonical: "Kotlin", Keywords: []string{"kotlin"}},
			{Canonical: "React", Keywords: []string{"react"}},
			{Canonical: "Angular", Keywords: []string{"angular"}},
			{Canonical: "Vue", Keywords: []string{"vue"}},
			{Canonical: "Node.js", Keywords: []string{"node.js", "nodejs", "node js"}},
			{Canonical: "Express", Keywords: []string{"express"}},
			{Canonical: "Django", Keywords: []string{"django"}},
			{Canonical: "Rails", Keywords: []string{"rails"}},
			{Canonical: "Spring", Keywords: []string{"spring"}},
			{Canonical: "SQL", Keywords: []string{"sql"}},
			{Canonical: "PostgreSQL", Keywords: []string{"postgres", "postgresql"}},
			{Canonical: "MySQL", Keywords: []string{"mysql"}},
			{Canonical: "MongoDB", Keywords: []string{"mongodb", "mongo"}},
			{Canonical: "Redis", Keywords: []string{"redis"}},
			{Canonical: "AWS", Keywords: []string{"aws", "amazon web services"}},
			{Canonical: "GCP", Keywords: []string{"gcp", "google cloud"}},
			{Canonical: "Azure", Keywords: []string{"azure"}},
			{Canonical: "Docker", Keywords: []string{"docker"}},
			{Canonical: "Kubernetes", Keywords: []string{"kubernetes", "k8s"}},
			{Canonical: "Terraform", Keywords: []string{"terraform"}},
			{Canonical: "GraphQL", Keywords: []string{"graphql"}},
			{Canonical: "REST", Keywords: []string{"rest api", "restful"}},
			{Canonical: "CI/CD", Keywords: []string{"ci/cd", "continuous integration"}},
			{Canonical: "Git", Keywords: []string{"git"}},
			{Canonical: "Machine Learning", Keywords: []string{"machine learning", "ml engineer"}},
			{Canonical: "Data Analysis", Keywords: []string{"data analysis", "data analytics"}},
			{Canonical: "Figma", Keywords: []string{"figma"}},
			{Canonical: "Agile", Keywords: []string{"agile", "scrum"}},
		},
		Tags: []TagEntry{
			{Name: "backend", Keywords: []string{"backend", "back-end", "server-side", "api", "database", "microservice"}},
			{Name: "frontend", Keywords: []string{"frontend", "front-end", "react", "angular", "vue", "css", "html"}},
			{Name: "mobile", Keywords: []string{"mobile", "ios", "android", "react native", "flutter"}},
			{Name: "data", Keywords: []string{"data science", "machine learning", "analytics", "etl", "data pipeline"}},
			{Name: "devops", Keywords: []string{"devops", "docker", "kubernetes", "terraform", "ci/cd", "infrastructure"}},
			{Name: "design", Keywords: []string{"figma", "ux", "ui design", "user research", "wireframe"}},
		},
	}
}

// LoadDictionary reads a dictionary override from a JSON file. Deployments
// with the default tables pass an empty path.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return DefaultDictionary(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}

	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary file %s: %w", path, err)
	}
	if len(dict.Skills) == 0 {
		return nil, fmt.Errorf("dictionary file %s defines no skills", path)
	}
	return &dict, nil
}
