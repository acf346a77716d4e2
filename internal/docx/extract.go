// internal/docx/extract.go

// Package docx extracts plain text from Word documents and persists uploaded
// copies under a per-sender directory.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrDocumentParse reports a container that could not be read as a Word
// document. It is a per-request failure, never a connection failure.
var ErrDocumentParse = errors.New("unreadable document")

const (
	documentEntry  = "word/document.xml"
	titleStyle     = "Title"
	separatorWidth = 40
)

// ExtractText parses the OOXML container and renders its readable content:
// the title line (if the document has one) followed by a separator rule,
// each non-empty paragraph on its own line, then every table row with cells
// joined by " | ". Rows whose cells are all empty are skipped.
func ExtractText(fileBytes []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	doc, err := readDocumentXML(zr)
	if err != nil {
		return "", err
	}

	var lines []string
	titleSeen := false
	for _, p := range doc.Body.Paragraphs {
		text := p.text()
		if text == "" {
			continue
		}
		if !titleSeen && p.styled(titleStyle) {
			titleSeen = true
			lines = append(lines, text, strings.Repeat("=", separatorWidth))
			continue
		}
		lines = append(lines, text)
	}

	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := make([]string, len(row.Cells))
			empty := true
			for i, cell := range row.Cells {
				cells[i] = cell.text()
				if cells[i] != "" {
					empty = false
				}
			}
			if empty {
				continue
			}
			lines = append(lines, strings.Join(cells, " | "))
		}
	}

	return strings.Join(lines, "\n"), nil
}

func readDocumentXML(zr *zip.Reader) (*documentXML, error) {
	for _, f := range zr.File {
		if f.Name != documentEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
		}
		return parseDocumentXML(data)
	}
	return nil, fmt.Errorf("%w: missing %s", ErrDocumentParse, documentEntry)
}
