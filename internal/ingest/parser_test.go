package ingest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gutenbergSample = "\ufeffThe Project Gutenberg eBook of Beyond Good and Evil\r\n" +
	"\r\n" +
	"Author: Friedrich Nietzsche\r\n" +
	"Translator: Helen Zimmern\r\n" +
	"\r\n" +
	"*** START OF THE PROJECT GUTENBERG EBOOK BEYOND GOOD AND EVIL ***\r\n" +
	"\r\n" +
	"PREFACE\r\n" +
	"\r\n" +
	"\r\n" +
	"\r\n" +
	"Supposing that Truth is a woman--what then?\r\n" +
	"12\r\n" +
	"Is there not ground   for suspecting?\r\n" +
	"*** END OF THE PROJECT GUTENBERG EBOOK BEYOND GOOD AND EVIL ***\r\n" +
	"License boilerplate that must not be analyzed.\r\n"

func TestParseGutenbergExtractsBody(t *testing.T) {
	text, translator := parseGutenberg(gutenbergSample)
	assert.Equal(t, "Helen Zimmern", translator)
	assert.Equal(t, "PREFACE\n\nSupposing that Truth is a woman--what then?\nIs there not ground for suspecting?", text)
	assert.NotContains(t, text, "License")
	assert.NotContains(t, text, "Author")
}

func TestParseGutenbergWithoutMarkersKeepsText(t *testing.T) {
	text, translator := parseGutenberg("Thus spoke Zarathustra.\n\n\n\nAnd so on.")
	assert.Empty(t, translator)
	assert.Equal(t, "Thus spoke Zarathustra.\n\nAnd so on.", text)
}

func TestParseGutenbergTranslatorOnlyFromHeader(t *testing.T) {
	_, translator := parseGutenberg("Preface\nTranslated by the author himself, in exile.\n")
	assert.Empty(t, translator, "body line taken as translator")

	raw := "Translator:Walter Kaufmann\n" +
		"*** START OF THE PROJECT GUTENBERG EBOOK X ***\n" +
		"Translators are traitors.\n" +
		"*** END OF THE PROJECT GUTENBERG EBOOK X ***\n"
	text, translator := parseGutenberg(raw)
	assert.Equal(t, "Walter Kaufmann", translator)
	assert.Equal(t, "Translators are traitors.", text)
}

func TestMetadata(t *testing.T) {
	title, id := Metadata("Nietzsche_Thus Spake Zarathustra, A Book.txt", "Nietzsche_")
	assert.Equal(t, "Thus Spake Zarathustra, A Book", title)
	assert.Equal(t, "thus_spake_zarathustra_a_book", id)
}

func TestParseDOCX(t *testing.T) {
	raw := buildDOCX(t, `<w:document><w:body><w:p><w:r><w:t>Chapter 1</w:t></w:r></w:p><w:p><w:r><w:t>Hello world.</w:t></w:r></w:p></w:body></w:document>`)
	got, err := parseDOCX(raw)
	require.NoError(t, err)
	assert.Equal(t, "Chapter 1\nHello world.", normalizeWhitespace(got))
}

func TestParseFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.rtf")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	_, err := ParseFile(path, "")
	assert.Error(t, err)
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Nietzsche_The Antichrist.txt", "Christianity is the one great curse.")
	writeFile(t, dir, "Nietzsche_Ecce Homo.txt", gutenbergSample)
	writeFile(t, dir, "notes.md", "ignored by glob")

	texts, err := LoadCorpus(dir, "Nietzsche_*.txt", "Nietzsche_")
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "ecce_homo", texts[0].ID)
	assert.Equal(t, "the_antichrist", texts[1].ID)
	assert.Equal(t, "Helen Zimmern", texts[0].Translator)
	assert.Equal(t, "Nietzsche_The Antichrist.txt", texts[1].Filename)
}

func TestLoadCorpusEmpty(t *testing.T) {
	_, err := LoadCorpus(t.TempDir(), "*.txt", "")
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestLoadCorpusFailsFastOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "fine")
	writeFile(t, dir, "b.docx", "not a zip archive")
	_, err := LoadCorpus(dir, "*", "")
	assert.Error(t, err, "corrupt docx should fail the load")
}

func TestLoadCorpusDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Ecce Homo.txt", "one")
	writeFile(t, dir, "Ecce_Homo.txt", "two")
	_, err := LoadCorpus(dir, "*.txt", "")
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` + bodyXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return b.Bytes()
}
