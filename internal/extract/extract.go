// Package extract pulls plain text out of uploaded resume and job description files.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported source document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

var (
	byExtension = map[string]Format{
		".pdf":  FormatPDF,
		".docx": FormatDOCX,
		".txt":  FormatText,
		".text": FormatText,
	}
	byMediaType = map[string]Format{
		"application/pdf": FormatPDF,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
		"text/plain": FormatText,
	}
)

// Detect resolves the format from the content type, falling back to the file extension.
func Detect(filename, contentType string) (Format, error) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if f, ok := byMediaType[mt]; ok {
			return f, nil
		}
	}
	if f, ok := byExtension[strings.ToLower(filepath.Ext(filename))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

// Extractor converts document bytes into text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract detects the format of the file and returns its text. When allowed is not
// empty, formats outside it are rejected with ErrUnsupportedFormat.
func (e *Extractor) Extract(filename, contentType string, data []byte, allowed ...Format) (string, error) {
	format, err := Detect(filename, contentType)
	if err != nil {
		return "", err
	}
	if len(allowed) > 0 && !isAllowed(format, allowed) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	switch format {
	case FormatPDF:
		return pdfText(data)
	case FormatDOCX:
		return docxText(data)
	default:
		return plainText(data), nil
	}
}

func isAllowed(f Format, allowed []Format) bool {
	for _, a := range allowed {
		if a == f {
			return true
		}
	}
	return false
}

func plainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}

func pdfText(data []byte) (string, error) {
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
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	docxBreaks = strings.NewReplacer("</w:p>", "\n", "<w:br/>", "\n", "<w:tab/>", "\t")
	xmlTag     = regexp.MustCompile(`<[^>]*>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	content := docxBreaks.Replace(doc.Editable().GetContent())
	return html.UnescapeString(xmlTag.ReplaceAllString(content, "")), nil
}
