// internal/docx/document.go
package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// XML shape of word/document.xml, limited to the parts we read. Tags match
// local names, so the w: namespace prefix is irrelevant.
type documentXML struct {
	Body bodyXML `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	Tables     []tableXML     `xml:"tbl"`
}

type paragraphXML struct {
	Props *paragraphProps `xml:"pPr"`
	Runs  []runXML        `xml:"r"`
}

type paragraphProps struct {
	Style *styleXML `xml:"pStyle"`
}

type styleXML struct {
	Val string `xml:"val,attr"`
}

type runXML struct {
	Texts []string `xml:"t"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

func parseDocumentXML(data []byte) (*documentXML, error) {
	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	return &doc, nil
}

func (p paragraphXML) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			b.WriteString(t)
		}
	}
	return b.String()
}

func (p paragraphXML) styled(style string) bool {
	return p.Props != nil && p.Props.Style != nil && p.Props.Style.Val == style
}

func (c tableCellXML) text() string {
	var parts []string
	for _, p := range c.Paragraphs {
		if t := p.text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
