package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/unicode"
)

// format identifies a supported resume document format.
type format string

const (
	formatPDF  format = "pdf"
	formatDocx format = "docx"
	formatDoc  format = "doc"
	formatText format = "text"
)

var mimeFormats = map[string]format{
	"application/pdf": formatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": formatDocx,
	"application/msword": formatDoc,
	"text/plain":         formatText,
}

var extensionFormats = map[string]format{
	".pdf":  formatPDF,
	".docx": formatDocx,
	".doc":  formatDoc,
	".txt":  formatText,
	".text": formatText,
	".md":   formatText,
}

// detectFormat resolves the decode strategy from the MIME type first, falling
// back to the filename extension.
func detectFormat(mimeType, filename string) (format, bool) {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	// Strip parameters such as "; charset=utf-8".
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if f, ok := mimeFormats[mime]; ok {
		return f, true
	}
	if strings.HasPrefix(mime, "text/") {
		return formatText, true
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, true
	}
	return "", false
}

// decode converts document bytes into raw text for the detected format.
func decode(data []byte, f format) (string, error) {
	switch f {
	case formatPDF:
		return decodePDF(data)
	case formatDocx:
		return decodeDocx(data)
	case formatDoc:
		return decodeDoc(data)
	case formatText:
		return string(data), nil
	default:
		return "", fmt.Errorf("no decoder for format %q", f)
	}
}

// decodePDF extracts the text layer from a PDF document.
func decodePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("failed to copy PDF text: %w", err)
	}
	return buf.String(), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// decodeDocx reads word/document.xml from the OOXML package and strips the
// markup, keeping paragraph boundaries as newlines.
func decodeDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX package: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}
		break
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("no word/document.xml found in DOCX package")
	}

	text := string(docXML)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTagPattern.ReplaceAllString(text, " ")
	return text, nil
}

// decodeDoc decodes a legacy Word binary as UTF-16LE text. This is explicitly
// lossy: binary structures survive as garbage runes and are dropped below.
func decodeDoc(data []byte) (string, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode DOC bytes as UTF-16LE: %w", err)
	}

	// Keep only printable runes and line structure.
	var sb strings.Builder
	sb.Grow(len(decoded))
	for _, r := range string(decoded) {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			sb.WriteRune(r)
		case r == utf8.RuneError:
			// Skip undecodable sequences.
		case r >= 0x20 && r != 0x7f:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}
