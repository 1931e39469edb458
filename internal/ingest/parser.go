package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Source is one loaded corpus text. It is immutable once loaded.
type Source struct {
	ID         string
	Title      string
	Translator string
	Filename   string
	Text       string
}

var supportedExts = map[string]bool{".txt": true, ".docx": true, ".pdf": true}

// ParseFile loads one corpus file. titlePrefix is stripped from the file
// stem before the title and id are derived.
func ParseFile(path, titlePrefix string) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var text, translator string
	switch ext {
	case ".txt":
		text, translator = parseGutenberg(string(raw))
	case ".docx":
		text, err = parseDOCX(raw)
		if err != nil {
			return nil, err
		}
		text = normalizeWhitespace(text)
	case ".pdf":
		text, err = parsePDF(path)
		if err != nil {
			return nil, err
		}
		text = normalizeWhitespace(text)
	}

	filename := filepath.Base(path)
	title, id := Metadata(filename, titlePrefix)
	return &Source{
		ID:         id,
		Title:      title,
		Translator: translator,
		Filename:   filename,
		Text:       text,
	}, nil
}

// Metadata derives the display title and normalized id from a file name.
func Metadata(filename, titlePrefix string) (title, id string) {
	title = strings.TrimSuffix(filename, filepath.Ext(filename))
	if titlePrefix != "" {
		title = strings.TrimPrefix(title, titlePrefix)
	}
	title = strings.TrimSpace(title)
	id = strings.ToLower(title)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, ",", "")
	return title, id
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", fmt.Errorf("open document.xml: %w", openErr)
			}
			defer rc.Close()
			xmlData, err = io.ReadAll(rc)
			if err != nil {
				return "", fmt.Errorf("read document.xml: %w", err)
			}
			break
		}
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
			if t.Name.Local == "p" && b.Len() > 0 {
				b.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, "\n")
}
