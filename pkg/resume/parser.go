// Package resume extracts plain text from uploaded CV files.
package resume

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/cybersoft/talentmatch/pkg/apperr"
)

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
	reLines  = regexp.MustCompile(`\n\s*\n+`)
)

// Extensions lists the accepted upload formats.
var Extensions = []string{".pdf", ".docx", ".txt"}

// Parser implements text extraction for the formats in Extensions.
type Parser struct{}

func NewParser() Parser { return Parser{} }

// Extract returns normalized plain text. Unknown extensions fail with
// apperr.ErrUnsupported; unreadable or empty documents with apperr.ErrValidation.
func (Parser) Extract(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		text, err = extractTextFromPDF(data)
	case ".docx":
		text, err = extractTextFromDocx(data)
	case ".txt":
		if !utf8.Valid(data) {
			err = fmt.Errorf("text file is not valid UTF-8")
		}
		text = string(data)
	default:
		return "", apperr.New(apperr.ErrUnsupported,
			fmt.Sprintf("Unsupported file type %q: allowed %s", ext, strings.Join(Extensions, ", ")))
	}
	if err != nil {
		return "", apperr.Wrap(apperr.ErrValidation, err, "Could not read the uploaded file")
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", apperr.New(apperr.ErrValidation, "No text could be extracted from the uploaded file")
	}
	return text, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	xml := doc.Editable().GetContent()
	// Paragraph boundaries become newlines.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return html.UnescapeString(reTags.ReplaceAllString(xml, "")), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reLines.ReplaceAllString(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
