package docx

import "encoding/xml"

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
	Hyperlinks []hyperlinkXML    `xml:"hyperlink"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         styleRefXML        `xml:"pStyle"`
	NumPr         *numberingPropsXML `xml:"numPr"`
	Justification styleRefXML        `xml:"jc"`
	Spacing       spacingXML         `xml:"spacing"`
	Indent        indentXML          `xml:"ind"`
	KeepNext      *presenceXML       `xml:"keepNext"`
	KeepLines     *presenceXML       `xml:"keepLines"`
	WidowControl  *boolXML           `xml:"widowControl"`
}

// styleRefXML represents a single-valued reference like pStyle or jc.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents native list linkage (<w:numPr>).
type numberingPropsXML struct {
	ILvl  styleRefXML `xml:"ilvl"`
	NumID styleRefXML `xml:"numId"`
}

// spacingXML represents paragraph spacing, values in twips.
type spacingXML struct {
	Before string `xml:"before,attr"`
	After  string `xml:"after,attr"`
	Line   string `xml:"line,attr"`
}

// indentXML represents paragraph indentation, values in twips.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// presenceXML represents an element whose mere presence is the flag.
type presenceXML struct {
	Val string `xml:"val,attr"`
}

// boolXML represents an on/off toggle element.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// set reports whether the element appeared at all.
func (b boolXML) set() bool { return b.XMLName.Local != "" }

// on reports whether the element appeared and is not explicitly off.
func (b boolXML) on() bool { return b.set() && b.Val != "false" && b.Val != "0" }

// runXML represents a text run (<w:r>). Inner keeps the raw child XML
// so text, tab, and break elements can be read back in document order.
type runXML struct {
	XMLName    xml.Name    `xml:"r"`
	Properties runPropsXML `xml:"rPr"`
	Inner      []byte      `xml:",innerxml"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      boolXML     `xml:"b"`
	Italic    boolXML     `xml:"i"`
	Underline styleRefXML `xml:"u"`
	Strike    boolXML     `xml:"strike"`
	Caps      boolXML     `xml:"caps"`
	SmallCaps boolXML     `xml:"smallCaps"`
	VertAlign styleRefXML `xml:"vertAlign"`
	FontSize  styleRefXML `xml:"sz"`
	Font      fontXML     `xml:"rFonts"`
	Color     styleRefXML `xml:"color"`
}

// fontXML represents font settings.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// hyperlinkXML represents a hyperlink wrapping runs.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}
