package settings

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"
)

// Declaration is the fixed first line of every serialized settings file.
const Declaration = `<?xml version="1.0" encoding="utf-8"?>`

const indentUnit = "  "

// attrEscaper covers the five reserved markup characters. The ampersand
// replacement is safe with Replacer because all replacements happen in a
// single pass.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// Serialize renders the document in the game's own formatting. The output
// is deterministic: identical document state always yields identical
// bytes, which is what makes full rewrite-on-every-edit safe.
func (d *Document) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteString(Declaration)
	buf.WriteByte('\n')
	writeElement(&buf, d.Root(), d.Root(), 0)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, el, root *etree.Element, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(el.Tag)

	suppress := suppressValue(el, root)
	for _, attr := range el.Attr {
		if suppress && attr.Key == AttrValue {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(attr.Key)
		buf.WriteString(`="`)
		buf.WriteString(attrEscaper.Replace(attr.Value))
		buf.WriteByte('"')
	}

	children := el.ChildElements()
	if len(children) == 0 {
		buf.WriteString(" />\n")
		return
	}

	buf.WriteString(">\n")
	for _, child := range children {
		writeElement(buf, child, root, depth+1)
	}
	buf.WriteString(indent)
	buf.WriteString("</")
	buf.WriteString(el.Tag)
	buf.WriteString(">\n")
}

// suppressValue reports whether the element's value attribute is withheld
// on write: the mod container directly under the root carries no data in
// its value, and the value of any Dependencies property is a placeholder.
func suppressValue(el, root *etree.Element) bool {
	if el.Tag != TagProperty {
		return false
	}
	switch el.SelectAttrValue(AttrName, "") {
	case NameDependencies:
		return true
	case NameContainer:
		return el.Parent() == root
	}
	return false
}
