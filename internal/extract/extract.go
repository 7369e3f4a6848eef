// Package extract pulls plain text out of uploaded documents. Supported
// formats are txt, pdf, docx, and odt; everything else is rejected up
// front so comparisons never run against binary garbage.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file extensions the extractor
// cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extensions lists the supported file extensions, without the dot.
var Extensions = []string{"txt", "pdf", "docx", "odt"}

// Supported reports whether the filename has an extension the extractor
// handles.
func Supported(filename string) bool {
	ext := normalizeExt(filename)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Text reads the file and returns its plain-text content, dispatching on
// the file extension.
func Text(path string) (string, error) {
	if !Supported(path) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return fromBytes(data, filepath.Base(path))
}

// FromReader extracts text from an already-open document of the given
// filename (used for uploads that have not touched disk yet).
func FromReader(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", filename, err)
	}
	return fromBytes(data, filename)
}

func fromBytes(data []byte, filename string) (string, error) {
	switch normalizeExt(filename) {
	case "txt":
		return string(data), nil
	case "pdf":
		return pdfText(data)
	case "docx":
		return zipBytesText(data, "word/document.xml")
	case "odt":
		return zipBytesText(data, "content.xml")
	default:
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
}

func normalizeExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// pdfText extracts the plain-text stream of a PDF document.
func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	tr, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, tr); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// zipBytesText opens the zip archive in data and extracts the text nodes
// of the named XML entry. Both docx and odt store their body this way.
func zipBytesText(data []byte, entry string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", entry, err)
		}
		defer rc.Close()
		return xmlText(rc)
	}
	return "", fmt.Errorf("entry %s not found in archive", entry)
}

// xmlText concatenates the character data of an XML document, inserting a
// space at paragraph boundaries so words from adjacent paragraphs do not
// fuse together.
func xmlText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				b.WriteString(" ")
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
