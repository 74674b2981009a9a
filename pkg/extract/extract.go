// Package extract converts supported binary business documents (PDF, DOC,
// DOCX) into plain text. It is a pure function over bytes: no temp files,
// no state shared between calls.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ParseFormat validates a format name or filename against the accepted
// set. Accepts bare names ("pdf"), dotted extensions (".pdf"), and full
// filenames ("report.PDF"). Returns ErrUnsupportedFormat otherwise.
func ParseFormat(name string) (Format, error) {
	ext := strings.ToLower(name)
	if strings.Contains(ext, ".") {
		ext = strings.TrimPrefix(filepath.Ext(ext), ".")
	}

	switch Format(ext) {
	case FormatPDF, FormatDOC, FormatDOCX:
		return Format(ext), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: pdf, doc, docx)", ErrUnsupportedFormat, name)
	}
}

// DetectFormat sniffs the document format from magic bytes. Returns ""
// when the content matches no supported format.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX
	case bytes.HasPrefix(data, oleMagic):
		return FormatDOC
	default:
		return ""
	}
}

// Extract converts a document to plain text. The declared format is
// reconciled with content sniffing: when the magic bytes identify a
// different supported format (e.g. a renamed .docx handed in as .doc),
// the sniffed format wins. Returns ErrExtraction when the binary cannot
// be parsed.
func Extract(data []byte, format Format) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}

	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}

	if sniffed := DetectFormat(data); sniffed != "" && sniffed != format {
		format = sniffed
	}

	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatDOC:
		return extractDOC(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
