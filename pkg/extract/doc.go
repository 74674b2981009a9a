package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

const (
	wordDocumentStream = "WordDocument"
	minTextRun         = 4
)

// extractDOC salvages text from a legacy Word binary. The OLE compound
// file is walked with mscfb to find the WordDocument stream; the stream's
// text is then recovered from both its UTF-16LE and single-byte piece
// encodings, keeping whichever interpretation yields more content. Legacy
// .doc piece tables are not fully reconstructed; runs shorter than
// minTextRun are treated as structure noise and dropped.
func extractDOC(data []byte) (string, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: open compound file: %w", ErrExtraction, err)
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != wordDocumentStream {
			continue
		}

		stream, err := io.ReadAll(entry)
		if err != nil {
			return "", fmt.Errorf("%w: read %s stream: %w", ErrExtraction, wordDocumentStream, err)
		}

		text := salvageText(stream)
		if text == "" {
			return "", fmt.Errorf("%w: no recoverable text in %s stream", ErrExtraction, wordDocumentStream)
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: no %s stream in compound file", ErrExtraction, wordDocumentStream)
}

func salvageText(stream []byte) string {
	wide := salvageUTF16(stream)
	narrow := salvageANSI(stream)

	if len(wide) >= len(narrow) {
		return wide
	}
	return narrow
}

func salvageUTF16(stream []byte) string {
	var (
		sb  strings.Builder
		run []uint16
	)

	flush := func() {
		if len(run) >= minTextRun {
			sb.WriteString(string(utf16.Decode(run)))
			sb.WriteString("\n")
		}
		run = run[:0]
	}

	for i := 0; i+1 < len(stream); i += 2 {
		u := uint16(stream[i]) | uint16(stream[i+1])<<8
		switch {
		case u == '\r' || u == 0x0007: // paragraph and cell marks
			flush()
		case printableRune(rune(u)):
			run = append(run, u)
		default:
			flush()
		}
	}
	flush()

	return strings.TrimSpace(sb.String())
}

func salvageANSI(stream []byte) string {
	var (
		sb  strings.Builder
		run []byte
	)

	flush := func() {
		if len(run) >= minTextRun {
			sb.Write(run)
			sb.WriteString("\n")
		}
		run = run[:0]
	}

	for _, b := range stream {
		switch {
		case b == '\r':
			flush()
		case b >= 0x20 && b < 0x7F:
			run = append(run, b)
		default:
			flush()
		}
	}
	flush()

	return strings.TrimSpace(sb.String())
}

func printableRune(r rune) bool {
	if r == '\t' {
		return true
	}
	return r >= 0x20 && r != 0x7F && unicode.IsPrint(r)
}
