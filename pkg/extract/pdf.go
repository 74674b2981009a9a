package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// extractPDF pulls text from every page's decoded content stream. pdfcpu
// hands back raw content operators; decodeContentText recovers the shown
// strings from Tj/TJ/quote operators.
func extractPDF(data []byte) (string, error) {
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %w", ErrExtraction, err)
	}

	var sb strings.Builder
	for page := 1; page <= pdfCtx.PageCount; page++ {
		content, err := pdfcpu.ExtractPageContent(pdfCtx, page)
		if err != nil {
			return "", fmt.Errorf("%w: extract page %d: %w", ErrExtraction, page, err)
		}
		if content == nil {
			continue
		}

		raw, err := io.ReadAll(content)
		if err != nil {
			return "", fmt.Errorf("%w: read page %d content: %w", ErrExtraction, page, err)
		}

		if text := decodeContentText(raw); text != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(text)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// decodeContentText scans a PDF content stream for text-showing operators.
// Literal strings are buffered and flushed when a Tj, TJ, ' or " operator
// is hit; text-positioning operators (Td, TD, T*) and ET produce line
// breaks. This recovers layout-ordered text from linearly written
// documents, which is what process description exports are.
func decodeContentText(content []byte) string {
	var (
		sb      strings.Builder
		pending []string
	)

	flush := func(sep string) {
		if len(pending) == 0 {
			return
		}
		sb.WriteString(strings.Join(pending, ""))
		sb.WriteString(sep)
		pending = pending[:0]
	}

	i := 0
	for i < len(content) {
		c := content[i]

		switch {
		case c == '(':
			str, next := readLiteralString(content, i)
			pending = append(pending, str)
			i = next
		case c == 'T' && i+1 < len(content):
			switch content[i+1] {
			case 'j', 'J':
				flush(" ")
				i += 2
			case 'd', 'D', '*':
				flush("\n")
				i += 2
			default:
				i++
			}
		case c == 'E' && i+1 < len(content) && content[i+1] == 'T':
			flush("\n")
			i += 2
		case c == '\'' || c == '"':
			flush("\n")
			i++
		case c == '%':
			// comment runs to end of line
			for i < len(content) && content[i] != '\n' {
				i++
			}
		default:
			i++
		}
	}
	flush("")

	return strings.TrimSpace(sb.String())
}

// readLiteralString parses a PDF literal string starting at the opening
// parenthesis, honoring escapes and balanced nesting. Returns the decoded
// string and the index past the closing parenthesis.
func readLiteralString(content []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start

	for i < len(content) {
		c := content[i]

		switch c {
		case '\\':
			if i+1 < len(content) {
				sb.WriteString(unescapeLiteral(content[i+1]))
				i += 2
				continue
			}
			i++
		case '(':
			depth++
			if depth > 1 {
				sb.WriteByte(c)
			}
			i++
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), i
}

func unescapeLiteral(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case '(', ')', '\\':
		return string(c)
	default:
		return ""
	}
}
