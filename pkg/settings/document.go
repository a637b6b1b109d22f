package settings

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/arthur-debert/modot/pkg/errors"
)

// Element and attribute vocabulary of the settings file. Everything except
// the root is a Property element distinguished by its name attribute.
const (
	TagRoot     = "Data"
	TagProperty = "Property"

	AttrName     = "name"
	AttrValue    = "value"
	AttrIndex    = "_index"
	AttrTemplate = "template"

	RootTemplate = "GcModSettings"

	// Top-level property names
	NameDisableAll = "DisableAllMods"
	NameContainer  = "Data"

	// Mod entry property names
	NameName         = "Name"
	NameAuthor       = "Author"
	NameID           = "ID"
	NameAuthorID     = "AuthorID"
	NameLastUpdated  = "LastUpdated"
	NameModPriority  = "ModPriority"
	NameEnabled      = "Enabled"
	NameEnabledVR    = "EnabledVR"
	NameDependencies = "Dependencies"

	// Value carried by every mod entry element
	EntryValue = "GcModSettingsInfo"
)

// Document is the in-memory model of the settings file: an ordered element
// tree owned by exactly one caller at a time.
type Document struct {
	doc *etree.Document
}

// New builds a minimal skeleton document: root, global disable toggle set
// to false, and an empty mod container.
func New() *Document {
	doc := etree.NewDocument()
	root := doc.CreateElement(TagRoot)
	root.CreateAttr(AttrTemplate, RootTemplate)

	disable := root.CreateElement(TagProperty)
	disable.CreateAttr(AttrName, NameDisableAll)
	disable.CreateAttr(AttrValue, "false")

	container := root.CreateElement(TagProperty)
	container.CreateAttr(AttrName, NameContainer)

	return &Document{doc: doc}
}

// Parse reads file text into a Document. Malformed markup yields a
// PARSE-coded error and no partial document. The parser assumes no schema
// beyond the root element: missing optional properties are left to callers
// to default.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "settings file is not well-formed markup")
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrParse, "settings file has no root element")
	}
	return &Document{doc: doc}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// TopLevel returns the Property element with the given logical name
// directly under the root, or nil.
func (d *Document) TopLevel(name string) *etree.Element {
	return childProperty(d.Root(), name)
}

// Container returns the mod container element, or nil when the file
// carries none.
func (d *Document) Container() *etree.Element {
	return d.TopLevel(NameContainer)
}

// EnsureContainer returns the mod container, creating an empty one when
// the parsed file lacked it.
func (d *Document) EnsureContainer() *etree.Element {
	if c := d.Container(); c != nil {
		return c
	}
	container := d.Root().CreateElement(TagProperty)
	container.CreateAttr(AttrName, NameContainer)
	return container
}

// GlobalDisable reports the disable-all toggle. A missing toggle defaults
// to false rather than erroring.
func (d *Document) GlobalDisable() bool {
	el := d.TopLevel(NameDisableAll)
	if el == nil {
		return false
	}
	v, err := strconv.ParseBool(el.SelectAttrValue(AttrValue, "false"))
	if err != nil {
		return false
	}
	return v
}

// SetGlobalDisable mutates the disable-all toggle, creating the property
// when the parsed file lacked it.
func (d *Document) SetGlobalDisable(flag bool) {
	el := d.TopLevel(NameDisableAll)
	if el == nil {
		el = etree.NewElement(TagProperty)
		el.CreateAttr(AttrName, NameDisableAll)
		el.CreateAttr(AttrValue, strconv.FormatBool(flag))
		// The toggle sits before the mod container in game-written files.
		d.Root().InsertChildAt(0, el)
		return
	}
	el.CreateAttr(AttrValue, strconv.FormatBool(flag))
}

// childProperty finds the first Property child of parent whose name
// attribute equals name.
func childProperty(parent *etree.Element, name string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.SelectElements(TagProperty) {
		if child.SelectAttrValue(AttrName, "") == name {
			return child
		}
	}
	return nil
}

// ChildProperty exposes childProperty for the registry layer.
func ChildProperty(parent *etree.Element, name string) *etree.Element {
	return childProperty(parent, name)
}

// PropertyValue returns the value attribute of the named Property child of
// parent, with ok reporting whether the child exists.
func PropertyValue(parent *etree.Element, name string) (string, bool) {
	el := childProperty(parent, name)
	if el == nil {
		return "", false
	}
	return el.SelectAttrValue(AttrValue, ""), true
}
