// Package docx provides DOCX (Office Open XML) parsing and mutation.
//
// Documents are loaded entirely in memory. The main document part is kept
// as raw XML with a byte span recorded per body paragraph, so new
// paragraphs can be spliced in as synthesized fragments while every other
// byte of the package round-trips untouched.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const documentPart = "word/document.xml"

// ErrInvalidDocument reports that the input byte buffer is not a readable
// DOCX package. This is a hard failure: nothing can be done without a
// loaded document.
var ErrInvalidDocument = errors.New("invalid or unreadable DOCX document")

// zipEntry is one stored part of the DOCX package.
type zipEntry struct {
	name string
	data []byte
}

// Document is a parsed DOCX document owned by one processing request.
type Document struct {
	entries  []zipEntry
	docIndex int // position of word/document.xml within entries
	docXML   []byte
	paras    []*Paragraph
	bodyEnd  int // byte offset of </w:body> within docXML
}

// Parse loads a DOCX document from a byte buffer.
func Parse(content []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrInvalidDocument, err)
	}

	d := &Document{docIndex: -1}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidDocument, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidDocument, f.Name, err)
		}
		if f.Name == documentPart {
			d.docIndex = len(d.entries)
		}
		d.entries = append(d.entries, zipEntry{name: f.Name, data: data})
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	d.docXML = d.entries[d.docIndex].data

	if err := d.scanParagraphs(); err != nil {
		return nil, err
	}
	return d, nil
}

// validate checks that required DOCX parts exist.
func (d *Document) validate() error {
	required := []string{"[Content_Types].xml", documentPart}
	have := make(map[string]bool, len(d.entries))
	for _, e := range d.entries {
		have[e.name] = true
	}
	for _, name := range required {
		if !have[name] {
			return fmt.Errorf("%w: missing required part %s", ErrInvalidDocument, name)
		}
	}
	return nil
}

// Paragraphs returns the body paragraphs in document order. The slice
// reflects insertions made through the mutation API.
func (d *Document) Paragraphs() []*Paragraph {
	return d.paras
}

// ParagraphCount returns the current number of body paragraphs.
func (d *Document) ParagraphCount() int {
	return len(d.paras)
}

// scanParagraphs walks word/document.xml once, recording the byte span of
// every direct child <w:p> of <w:body> and parsing each span into the
// paragraph view. Paragraphs nested in tables are not body paragraphs and
// are skipped.
func (d *Document) scanParagraphs() error {
	dec := xml.NewDecoder(bytes.NewReader(d.docXML))
	depth := 0
	inBody := false
	bodyDepth := 0

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: parsing %s: %v", ErrInvalidDocument, documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if !inBody && t.Name.Local == "body" {
				inBody = true
				bodyDepth = depth
				continue
			}
			if inBody && depth == bodyDepth+1 && t.Name.Local == "p" {
				if err := d.consumeParagraph(dec, int(offset)); err != nil {
					return err
				}
				depth-- // consumeParagraph read the matching end element
			}
		case xml.EndElement:
			depth--
			if inBody && t.Name.Local == "body" && depth == bodyDepth-1 {
				d.bodyEnd = int(offset)
				inBody = false
			}
		}
	}

	return nil
}

// consumeParagraph reads tokens until the paragraph's end element, then
// parses the covered span. A span that fails to parse as a paragraph
// element still occupies its slot, with empty text: formatting reads are
// best-effort, structure bookkeeping is not.
func (d *Document) consumeParagraph(dec *xml.Decoder, start int) error {
	nest := 1
	for nest > 0 {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: unterminated paragraph element: %v", ErrInvalidDocument, err)
		}
		switch tok.(type) {
		case xml.StartElement:
			nest++
		case xml.EndElement:
			nest--
		}
	}
	end := int(dec.InputOffset())

	p := parseParagraphSpan(d.docXML[start:end])
	p.Index = len(d.paras)
	p.start = start
	p.end = end
	d.paras = append(d.paras, p)
	return nil
}

// parseParagraphSpan unmarshals one <w:p> fragment into the paragraph
// view. Never fails hard: an uninspectable fragment degrades to an empty
// paragraph.
func parseParagraphSpan(fragment []byte) *Paragraph {
	var px paragraphXML
	if err := xml.Unmarshal(fragment, &px); err != nil {
		return &Paragraph{}
	}
	return fromXML(&px)
}
