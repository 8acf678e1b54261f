package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// InsertParagraphAfter splices a synthesized <w:p> fragment into the body
// immediately after the paragraph at index i. All later paragraph indices
// shift by one; the document's own bookkeeping stays correct, callers only
// track offsets for indices they captured before mutating.
func (d *Document) InsertParagraphAfter(i int, fragment []byte) error {
	if i < 0 || i >= len(d.paras) {
		return fmt.Errorf("paragraph index %d out of range [0,%d)", i, len(d.paras))
	}
	return d.splice(d.paras[i].end, i+1, fragment)
}

// AppendParagraph adds a synthesized <w:p> fragment at the end of the body.
func (d *Document) AppendParagraph(fragment []byte) error {
	if d.bodyEnd <= 0 || d.bodyEnd > len(d.docXML) {
		return fmt.Errorf("document body end not located")
	}
	pos := d.bodyEnd
	if n := len(d.paras); n > 0 && d.paras[n-1].end > pos {
		pos = d.paras[n-1].end
	}
	return d.splice(pos, len(d.paras), fragment)
}

// splice inserts the fragment at byte position pos, registering the new
// paragraph at slice index at and shifting every later span.
func (d *Document) splice(pos, at int, fragment []byte) error {
	p := parseParagraphSpan(fragment)

	buf := make([]byte, 0, len(d.docXML)+len(fragment))
	buf = append(buf, d.docXML[:pos]...)
	buf = append(buf, fragment...)
	buf = append(buf, d.docXML[pos:]...)
	d.docXML = buf

	shift := len(fragment)
	for _, q := range d.paras[at:] {
		q.start += shift
		q.end += shift
		q.Index++
	}
	if d.bodyEnd >= pos {
		d.bodyEnd += shift
	}

	p.Index = at
	p.start = pos
	p.end = pos + shift
	d.paras = append(d.paras, nil)
	copy(d.paras[at+1:], d.paras[at:])
	d.paras[at] = p

	return nil
}

// Save re-serializes the document to a byte buffer. Every part of the
// original package is written back unchanged except word/document.xml,
// which carries the spliced body.
func (d *Document) Save() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, e := range d.entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.name,
			Method: zip.Deflate,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
		data := e.data
		if i == d.docIndex {
			data = d.docXML
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
