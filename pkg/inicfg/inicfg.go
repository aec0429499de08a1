package inicfg

import (
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a single key/value line of a section.
type Entry struct {
	Key   string
	Value string
}

// SectionBuilder provides struct for a single ini-style section. Entries keep
// caller order and repeated keys are kept as repeated lines, never collapsed.
type SectionBuilder struct {
	// Name is rendered as the [name] header of the section.
	Name string
	// entries keeps key/value lines in insertion order.
	entries []Entry
	// Used in functions that define or mutate the section. errorMsg is
	// processed before the section is encoded.
	errorMsg string
}

// NewSection creates new instance of SectionBuilder.
func NewSection(name string) *SectionBuilder {
	builder := SectionBuilder{
		Name: name,
	}

	if name == "" {
		builder.errorMsg = "section 'name' cannot be empty"
	}

	return &builder
}

// WithEntry redefines the section with the given key and value appended.
func (builder *SectionBuilder) WithEntry(key, value string) *SectionBuilder {
	if builder.errorMsg != "" {
		return builder
	}

	if key == "" {
		builder.errorMsg = fmt.Sprintf("section %q entry 'key' cannot be empty", builder.Name)

		return builder
	}

	builder.entries = append(builder.entries, Entry{Key: key, Value: value})

	return builder
}

// WithBoolEntry redefines the section with the given key and a true/false value.
func (builder *SectionBuilder) WithBoolEntry(key string, value bool) *SectionBuilder {
	return builder.WithEntry(key, strconv.FormatBool(value))
}

// WithIntEntry redefines the section with the given key and a decimal value.
func (builder *SectionBuilder) WithIntEntry(key string, value int) *SectionBuilder {
	return builder.WithEntry(key, strconv.Itoa(value))
}

// Entries returns a copy of the entries defined on the section.
func (builder *SectionBuilder) Entries() []Entry {
	entries := make([]Entry, len(builder.entries))
	copy(entries, builder.entries)

	return entries
}

// Len returns the number of entries defined on the section.
func (builder *SectionBuilder) Len() int {
	return len(builder.entries)
}

// Document provides struct for an ordered set of sections keyed by section
// name. Defining a section name twice keeps its original position and
// replaces its content.
type Document struct {
	sections *orderedmap.OrderedMap[string, *SectionBuilder]
	// Used in functions that define or mutate the document. errorMsg is
	// processed before the document is encoded.
	errorMsg string
}

// NewDocument creates new instance of Document.
func NewDocument() *Document {
	return &Document{
		sections: orderedmap.New[string, *SectionBuilder](),
	}
}

// WithSection redefines the document with the given section.
func (document *Document) WithSection(section *SectionBuilder) *Document {
	if document.errorMsg != "" {
		return document
	}

	if section == nil {
		document.errorMsg = "document section cannot be nil"

		return document
	}

	document.sections.Set(section.Name, section)

	return document
}

// Section returns the section with the given name, or nil when the document
// does not define it.
func (document *Document) Section(name string) *SectionBuilder {
	section, defined := document.sections.Get(name)
	if !defined {
		return nil
	}

	return section
}

// Encode renders the document as ini-style text. Sections appear in insertion
// order separated by a single blank line, entries appear one per line as
// "key = value" in insertion order, and the same build sequence always
// produces byte-identical text.
func (document *Document) Encode() (string, error) {
	if document.errorMsg != "" {
		return "", fmt.Errorf(document.errorMsg)
	}

	var rendered strings.Builder

	for pair := document.sections.Oldest(); pair != nil; pair = pair.Next() {
		section := pair.Value

		if section.errorMsg != "" {
			return "", fmt.Errorf(section.errorMsg)
		}

		if rendered.Len() > 0 {
			rendered.WriteString("\n")
		}

		rendered.WriteString(fmt.Sprintf("[%s]\n", section.Name))

		for _, entry := range section.entries {
			rendered.WriteString(fmt.Sprintf("%s = %s\n", entry.Key, entry.Value))
		}
	}

	return rendered.String(), nil
}
