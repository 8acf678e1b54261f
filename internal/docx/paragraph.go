package docx

import (
	"bytes"
	"encoding/xml"
)

// Run is a contiguous same-formatted text span within a paragraph.
// Formatting fields hold the raw OOXML values ("" = not set): font sizes
// are half-points, colors are hex strings, underline is a style name.
type Run struct {
	Text      string
	FontName  string
	FontSize  string
	Bold      bool
	Italic    bool
	Underline string
	Strike    bool
	Caps      bool
	SmallCaps bool
	VertAlign string
	Color     string
}

// ParagraphProps carries paragraph-level formatting as raw OOXML values,
// "" meaning absent. Spacing and indents are twips. The tri-state toggles
// are pointers so absence and explicit false stay distinguishable.
type ParagraphProps struct {
	Alignment     string
	SpacingBefore string
	SpacingAfter  string
	LineSpacing   string
	IndentLeft    string
	IndentRight   string
	FirstLine     string
	Hanging       string
	KeepNext      *bool
	KeepLines     *bool
	WidowControl  *bool
}

// Paragraph is the read-only view of one document paragraph: its plain
// text, ordinal position, style, runs, paragraph formatting, and native
// list linkage when present.
type Paragraph struct {
	Index    int
	Text     string
	StyleID  string
	Runs     []Run
	Props    ParagraphProps
	NumID    string // "" when the paragraph has no numbering linkage
	NumLevel string

	start int // byte offset of <w:p> in word/document.xml
	end   int // byte offset just past </w:p>
}

// HasNumbering reports whether the paragraph carries native list linkage.
func (p *Paragraph) HasNumbering() bool { return p.NumID != "" }

// fromXML builds the paragraph view from a parsed <w:p> element.
func fromXML(px *paragraphXML) *Paragraph {
	p := &Paragraph{
		StyleID: px.Properties.Style.Val,
	}

	if px.Properties.NumPr != nil {
		p.NumID = px.Properties.NumPr.NumID.Val
		p.NumLevel = px.Properties.NumPr.ILvl.Val
		if p.NumID != "" && p.NumLevel == "" {
			p.NumLevel = "0"
		}
	}

	p.Props = ParagraphProps{
		Alignment:     px.Properties.Justification.Val,
		SpacingBefore: px.Properties.Spacing.Before,
		SpacingAfter:  px.Properties.Spacing.After,
		LineSpacing:   px.Properties.Spacing.Line,
		IndentLeft:    px.Properties.Indent.Left,
		IndentRight:   px.Properties.Indent.Right,
		FirstLine:     px.Properties.Indent.FirstLine,
		Hanging:       px.Properties.Indent.Hanging,
	}
	if px.Properties.KeepNext != nil {
		v := px.Properties.KeepNext.Val != "false" && px.Properties.KeepNext.Val != "0"
		p.Props.KeepNext = &v
	}
	if px.Properties.KeepLines != nil {
		v := px.Properties.KeepLines.Val != "false" && px.Properties.KeepLines.Val != "0"
		p.Props.KeepLines = &v
	}
	if px.Properties.WidowControl != nil {
		v := px.Properties.WidowControl.on()
		p.Props.WidowControl = &v
	}

	var text []byte
	appendRun := func(rx runXML) {
		runText := extractRunText(rx)
		if runText == "" {
			return
		}
		text = append(text, runText...)
		p.Runs = append(p.Runs, Run{
			Text:      runText,
			FontName:  rx.Properties.Font.ASCII,
			FontSize:  rx.Properties.FontSize.Val,
			Bold:      rx.Properties.Bold.on(),
			Italic:    rx.Properties.Italic.on(),
			Underline: rx.Properties.Underline.Val,
			Strike:    rx.Properties.Strike.on(),
			Caps:      rx.Properties.Caps.on(),
			SmallCaps: rx.Properties.SmallCaps.on(),
			VertAlign: rx.Properties.VertAlign.Val,
			Color:     rx.Properties.Color.Val,
		})
	}
	for _, rx := range px.Runs {
		appendRun(rx)
	}
	for _, h := range px.Hyperlinks {
		for _, rx := range h.Runs {
			appendRun(rx)
		}
	}
	p.Text = string(text)

	return p
}

// extractRunText walks the run's children in document order, mapping tab
// elements to "\t" and breaks to "\n". Order matters: a bullet stored as
// one run <w:t>•</w:t><w:tab/><w:t>Built</w:t> must read back "•\tBuilt"
// or separator detection sees the wrong character.
func extractRunText(rx runXML) string {
	dec := xml.NewDecoder(bytes.NewReader(rx.Inner))
	var out []byte
	depth := 0
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth != 1 {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				out = append(out, '\t')
			case "br", "cr":
				out = append(out, '\n')
			case "rPr":
				dec.Skip()
				depth--
			}
		case xml.EndElement:
			depth--
			inText = false
		case xml.CharData:
			if inText {
				out = append(out, el...)
			}
		}
	}
	return string(out)
}
