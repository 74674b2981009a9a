package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxDocumentPath = "word/document.xml"

// extractDOCX reads the main document part of an OOXML word archive and
// collects the text runs, one line per paragraph. No third-party library:
// a docx is a zip of WordprocessingML and the text lives in <w:t> elements.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open docx archive: %w", ErrExtraction, err)
	}

	doc, err := archive.Open(docxDocumentPath)
	if err != nil {
		return "", fmt.Errorf("%w: missing %s", ErrExtraction, docxDocumentPath)
	}
	defer doc.Close()

	text, err := decodeDocumentXML(doc)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %w", ErrExtraction, docxDocumentPath, err)
	}

	return text, nil
}

func decodeDocumentXML(r io.Reader) (string, error) {
	var (
		sb     strings.Builder
		inText bool
	)

	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
