package schema

import (
	"errors"
	"net/url"
	"path"
)

// Document wraps a raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the origin of the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Schema parses the payload, choosing HCL or YAML/JSON from the location's
// extension. URL query strings are ignored when picking the format.
func (d Document) Schema() (Schema, error) {
	name := d.Location()
	if d.source != nil && d.source.Kind() == SourceKindURL {
		if u, err := url.Parse(name); err == nil {
			name = path.Base(u.Path)
		}
	}
	return ParseFile(d.raw, name)
}
