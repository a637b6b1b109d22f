// Package registry provides the domain operations over a loaded settings
// Document: listing, toggling, reordering, adding and removing mod
// entries. Operations are pure tree mutations; persistence belongs to the
// session layer in pkg/commands.
package registry

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/logging"
	"github.com/arthur-debert/modot/pkg/settings"
)

// Entry is the derived, read-only view of one mod entry element.
type Entry struct {
	Name         string
	Author       string
	ID           string
	AuthorID     string
	LastUpdated  string
	Index        int
	Priority     int
	Enabled      bool
	EnabledVR    bool
	Dependencies []string
}

// Metadata carries the optional fields of a new entry. Zero values are
// acceptable everywhere; a missing LastUpdated defaults to the current
// UTC time.
type Metadata struct {
	Author      string
	ID          string
	AuthorID    string
	LastUpdated string
}

// Registry wraps a Document with mod-entry semantics.
type Registry struct {
	doc *settings.Document
	now func() time.Time
}

// New creates a Registry over the given document.
func New(doc *settings.Document) *Registry {
	return &Registry{doc: doc, now: time.Now}
}

// Document returns the underlying settings document.
func (r *Registry) Document() *settings.Document {
	return r.doc
}

// entryElements returns the mod entry elements in document order.
func (r *Registry) entryElements() []*etree.Element {
	container := r.doc.Container()
	if container == nil {
		return nil
	}
	var entries []*etree.Element
	for _, child := range container.SelectElements(settings.TagProperty) {
		if child.SelectAttrValue(settings.AttrName, "") == settings.NameContainer {
			entries = append(entries, child)
		}
	}
	return entries
}

// viewOf builds the Entry view of one entry element, applying defaults
// for missing optional properties.
func viewOf(el *etree.Element) Entry {
	name, _ := settings.PropertyValue(el, settings.NameName)
	author, _ := settings.PropertyValue(el, settings.NameAuthor)
	id, _ := settings.PropertyValue(el, settings.NameID)
	authorID, _ := settings.PropertyValue(el, settings.NameAuthorID)
	lastUpdated, _ := settings.PropertyValue(el, settings.NameLastUpdated)

	entry := Entry{
		Name:        name,
		Author:      author,
		ID:          id,
		AuthorID:    authorID,
		LastUpdated: lastUpdated,
	}

	entry.Index, _ = strconv.Atoi(el.SelectAttrValue(settings.AttrIndex, "0"))
	if v, ok := settings.PropertyValue(el, settings.NameModPriority); ok {
		entry.Priority, _ = strconv.Atoi(v)
	}
	if v, ok := settings.PropertyValue(el, settings.NameEnabled); ok {
		entry.Enabled, _ = strconv.ParseBool(v)
	}
	if v, ok := settings.PropertyValue(el, settings.NameEnabledVR); ok {
		entry.EnabledVR, _ = strconv.ParseBool(v)
	}

	if deps := settings.ChildProperty(el, settings.NameDependencies); deps != nil {
		for _, dep := range deps.SelectElements(settings.TagProperty) {
			entry.Dependencies = append(entry.Dependencies, dep.SelectAttrValue(settings.AttrValue, ""))
		}
	}
	return entry
}

// List returns all entries sorted ascending by priority, ties broken by
// document order.
func (r *Registry) List() []Entry {
	elements := r.entryElements()
	entries := make([]Entry, 0, len(elements))
	for _, el := range elements {
		entries = append(entries, viewOf(el))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority < entries[j].Priority
	})
	return entries
}

// Find returns the entry view for name, or false when no entry matches.
// Names are compared case-insensitively on the unescaped display text.
func (r *Registry) Find(name string) (Entry, bool) {
	el := r.findElement(name)
	if el == nil {
		return Entry{}, false
	}
	return viewOf(el), true
}

func (r *Registry) findElement(name string) *etree.Element {
	for _, el := range r.entryElements() {
		entryName, _ := settings.PropertyValue(el, settings.NameName)
		if strings.EqualFold(entryName, name) {
			return el
		}
	}
	return nil
}

// SetEnabled sets both enabled flags of the named entry. The flags always
// move together. An absent name is treated as already-desired state, not
// an error.
func (r *Registry) SetEnabled(name string, enabled bool) {
	el := r.findElement(name)
	if el == nil {
		return
	}
	setEnabledPair(el, enabled)
}

// SetAllEnabled is the bulk form of SetEnabled; a no-op on an empty
// registry.
func (r *Registry) SetAllEnabled(enabled bool) {
	for _, el := range r.entryElements() {
		setEnabledPair(el, enabled)
	}
}

func setEnabledPair(el *etree.Element, enabled bool) {
	value := strconv.FormatBool(enabled)
	setProperty(el, settings.NameEnabled, value)
	setProperty(el, settings.NameEnabledVR, value)
}

// SetGlobalDisable mutates the disable-all toggle.
func (r *Registry) SetGlobalDisable(flag bool) {
	r.doc.SetGlobalDisable(flag)
}

// GlobalDisable reports the disable-all toggle.
func (r *Registry) GlobalDisable() bool {
	return r.doc.GlobalDisable()
}

// Reorder assigns priority = position for the supplied name ordering, so
// post-state priorities are exactly 0..N-1. The ordering must be a
// complete permutation of the current name set; anything else is rejected
// as a usage error with no mutation. This is deliberately stricter than
// tolerating omitted names, which would silently preserve stale
// priorities.
func (r *Registry) Reorder(orderedNames []string) error {
	elements := r.entryElements()
	if len(orderedNames) != len(elements) {
		return errors.Newf(errors.ErrInvalidInput,
			"reorder requires the complete name set: got %d names for %d entries",
			len(orderedNames), len(elements))
	}

	claimed := make(map[*etree.Element]int, len(elements))
	for position, name := range orderedNames {
		el := r.findElement(name)
		if el == nil {
			return errors.Newf(errors.ErrInvalidInput, "reorder references unknown mod %q", name)
		}
		if _, dup := claimed[el]; dup {
			return errors.Newf(errors.ErrInvalidInput, "reorder lists mod %q more than once", name)
		}
		claimed[el] = position
	}

	for el, position := range claimed {
		setProperty(el, settings.NameModPriority, strconv.Itoa(position))
	}
	return nil
}

// Add appends a new entry subtree. The new entry receives
// index = max(existing)+1 and priority = max(existing)+1; earlier values
// are never reused even after removals. The display name is stored in the
// pipeline's canonical uppercased form. No other entry changes.
func (r *Registry) Add(name string, meta Metadata) Entry {
	logger := logging.GetLogger("registry")

	maxIndex, maxPriority := -1, -1
	for _, el := range r.entryElements() {
		entry := viewOf(el)
		if entry.Index > maxIndex {
			maxIndex = entry.Index
		}
		if entry.Priority > maxPriority {
			maxPriority = entry.Priority
		}
	}

	lastUpdated := meta.LastUpdated
	if lastUpdated == "" {
		lastUpdated = r.now().UTC().Format(time.RFC3339)
	}

	container := r.doc.EnsureContainer()
	el := container.CreateElement(settings.TagProperty)
	el.CreateAttr(settings.AttrName, settings.NameContainer)
	el.CreateAttr(settings.AttrValue, settings.EntryValue)
	el.CreateAttr(settings.AttrIndex, strconv.Itoa(maxIndex+1))

	canonical := strings.ToUpper(name)
	appendProperty(el, settings.NameName, canonical)
	appendProperty(el, settings.NameAuthor, meta.Author)
	appendProperty(el, settings.NameID, meta.ID)
	appendProperty(el, settings.NameAuthorID, meta.AuthorID)
	appendProperty(el, settings.NameLastUpdated, lastUpdated)
	appendProperty(el, settings.NameModPriority, strconv.Itoa(maxPriority+1))
	appendProperty(el, settings.NameEnabled, "true")
	appendProperty(el, settings.NameEnabledVR, "true")

	deps := el.CreateElement(settings.TagProperty)
	deps.CreateAttr(settings.AttrName, settings.NameDependencies)

	logger.Debug().
		Str("mod", canonical).
		Int("index", maxIndex+1).
		Int("priority", maxPriority+1).
		Msg("Added mod entry")

	return viewOf(el)
}

// Remove deletes the matching entry subtree. Absence of the name is a
// no-op so externally edited files are tolerated. Surviving entries keep
// their indices and priorities; contiguity is not required on disk.
func (r *Registry) Remove(name string) {
	el := r.findElement(name)
	if el == nil {
		return
	}
	el.Parent().RemoveChild(el)
}

// setProperty updates the value of the named child property, creating it
// when the entry was missing it.
func setProperty(el *etree.Element, name, value string) {
	child := settings.ChildProperty(el, name)
	if child == nil {
		appendProperty(el, name, value)
		return
	}
	child.CreateAttr(settings.AttrValue, value)
}

func appendProperty(el *etree.Element, name, value string) *etree.Element {
	child := el.CreateElement(settings.TagProperty)
	child.CreateAttr(settings.AttrName, name)
	child.CreateAttr(settings.AttrValue, value)
	return child
}
