package format

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/jonathan/resume-enhancer/internal/heuristics"
)

// Render synthesizes a <w:p> fragment carrying the given point text in
// the descriptor's formatting. Precedence: desc if non-nil, else fallback,
// else the hard-coded default. Application order matters: paragraph style,
// then paragraph attributes (absent ones skipped, never cleared), then
// native numbering linkage, then a single run in the primary captured
// typography. Render never fails; with nothing captured it degrades to a
// plain marker+separator+text run so the point is never lost.
func Render(desc, fallback *Descriptor, text string, rules *heuristics.Rules) []byte {
	d := desc
	if d == nil {
		d = fallback
	}
	if d == nil {
		d = Default("")
	}

	clean := rules.Clean(text)

	var buf bytes.Buffer
	buf.WriteString("<w:p>")
	renderProps(&buf, d)

	buf.WriteString("<w:r>")
	renderRunProps(&buf, d.Primary())

	// With native numbering Word draws the bullet glyph itself; a literal
	// marker would render twice.
	line := clean
	if d.List == nil {
		sep := d.Separator
		if sep == "" {
			sep = "\t"
		}
		marker := d.Marker
		if marker == "" {
			marker = "•"
		}
		line = marker + sep + clean
	}
	buf.WriteString(`<w:t xml:space="preserve">`)
	writeEscaped(&buf, line)
	buf.WriteString("</w:t></w:r></w:p>")

	return buf.Bytes()
}

// renderProps writes the <w:pPr> element for the descriptor, skipping
// every absent attribute.
func renderProps(buf *bytes.Buffer, d *Descriptor) {
	var pr bytes.Buffer

	if d.Style != "" {
		fmt.Fprintf(&pr, `<w:pStyle w:val="%s"/>`, escapeAttr(d.Style))
	}
	if d.List != nil {
		level := d.List.Level
		if level == "" {
			level = "0"
		}
		fmt.Fprintf(&pr, `<w:numPr><w:ilvl w:val="%s"/><w:numId w:val="%s"/></w:numPr>`,
			escapeAttr(level), escapeAttr(d.List.NumID))
	}
	if d.Props.KeepNext != nil {
		pr.WriteString(toggle("w:keepNext", *d.Props.KeepNext))
	}
	if d.Props.KeepLines != nil {
		pr.WriteString(toggle("w:keepLines", *d.Props.KeepLines))
	}
	if d.Props.WidowControl != nil {
		pr.WriteString(toggle("w:widowControl", *d.Props.WidowControl))
	}

	var spacing bytes.Buffer
	writeAttr(&spacing, "w:before", d.Props.SpacingBefore)
	writeAttr(&spacing, "w:after", d.Props.SpacingAfter)
	writeAttr(&spacing, "w:line", d.Props.LineSpacing)
	if spacing.Len() > 0 {
		fmt.Fprintf(&pr, "<w:spacing%s/>", spacing.String())
	}

	var indent bytes.Buffer
	writeAttr(&indent, "w:left", d.Props.IndentLeft)
	writeAttr(&indent, "w:right", d.Props.IndentRight)
	writeAttr(&indent, "w:firstLine", d.Props.FirstLine)
	writeAttr(&indent, "w:hanging", d.Props.Hanging)
	if indent.Len() > 0 {
		fmt.Fprintf(&pr, "<w:ind%s/>", indent.String())
	}

	if d.Props.Alignment != "" {
		fmt.Fprintf(&pr, `<w:jc w:val="%s"/>`, escapeAttr(d.Props.Alignment))
	}

	if pr.Len() > 0 {
		buf.WriteString("<w:pPr>")
		buf.Write(pr.Bytes())
		buf.WriteString("</w:pPr>")
	}
}

// renderRunProps writes the <w:rPr> element for the primary run.
func renderRunProps(buf *bytes.Buffer, r *RunFormat) {
	if r == nil {
		return
	}
	var pr bytes.Buffer

	if r.FontName != "" {
		fmt.Fprintf(&pr, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`,
			escapeAttr(r.FontName), escapeAttr(r.FontName))
	}
	if r.Bold {
		pr.WriteString("<w:b/>")
	}
	if r.Italic {
		pr.WriteString("<w:i/>")
	}
	if r.Caps {
		pr.WriteString("<w:caps/>")
	}
	if r.SmallCaps {
		pr.WriteString("<w:smallCaps/>")
	}
	if r.Strike {
		pr.WriteString("<w:strike/>")
	}
	if r.Color != "" {
		fmt.Fprintf(&pr, `<w:color w:val="%s"/>`, escapeAttr(r.Color))
	}
	if r.FontSize != "" {
		fmt.Fprintf(&pr, `<w:sz w:val="%s"/>`, escapeAttr(r.FontSize))
	}
	if r.Underline != "" {
		fmt.Fprintf(&pr, `<w:u w:val="%s"/>`, escapeAttr(r.Underline))
	}
	if r.VertAlign != "" {
		fmt.Fprintf(&pr, `<w:vertAlign w:val="%s"/>`, escapeAttr(r.VertAlign))
	}

	if pr.Len() > 0 {
		buf.WriteString("<w:rPr>")
		buf.Write(pr.Bytes())
		buf.WriteString("</w:rPr>")
	}
}

// toggle renders an on/off property element.
func toggle(name string, on bool) string {
	if on {
		return "<" + name + "/>"
	}
	return "<" + name + ` w:val="false"/>`
}

// writeAttr appends one attribute when the value is present.
func writeAttr(buf *bytes.Buffer, name, val string) {
	if val != "" {
		fmt.Fprintf(buf, ` %s="%s"`, name, escapeAttr(val))
	}
}

// writeEscaped writes XML-escaped character data.
func writeEscaped(buf *bytes.Buffer, s string) {
	// EscapeText only fails on writer errors; bytes.Buffer never errors.
	_ = xml.EscapeText(buf, []byte(s))
}

// escapeAttr escapes a value for use inside a double-quoted attribute.
func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
