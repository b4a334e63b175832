package schema

import (
	"fmt"
	"strings"
)

// FieldKind identifies the value type of a collection field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldBool     FieldKind = "bool"
	FieldEmail    FieldKind = "email"
	FieldURL      FieldKind = "url"
	FieldDate     FieldKind = "date"
	FieldSelect   FieldKind = "select"
	FieldJSON     FieldKind = "json"
	FieldFile     FieldKind = "file"
	FieldRelation FieldKind = "relation"
	FieldEditor   FieldKind = "editor"
)

// knownKinds is the set of field kinds the payload builder understands.
var knownKinds = map[FieldKind]struct{}{
	FieldText: {}, FieldNumber: {}, FieldBool: {}, FieldEmail: {},
	FieldURL: {}, FieldDate: {}, FieldSelect: {}, FieldJSON: {},
	FieldFile: {}, FieldRelation: {}, FieldEditor: {},
}

// CollectionKind identifies the collection type on the remote store.
type CollectionKind string

const (
	// KindBase is a plain record collection.
	KindBase CollectionKind = "base"
	// KindAuth is a collection whose records can authenticate.
	KindAuth CollectionKind = "auth"
	// KindView is a read-only collection backed by a query.
	KindView CollectionKind = "view"
)

// TextOptions holds attributes for text fields.
// Zero min/max mean unbounded.
type TextOptions struct {
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Pattern string `json:"pattern"`
}

// NumberOptions holds attributes for number fields.
// Nil Min/Max mean unbounded and are emitted as null.
type NumberOptions struct {
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
	NoDecimal bool     `json:"noDecimal"`
}

// SelectOptions holds attributes for select fields.
type SelectOptions struct {
	Values    []string `json:"values"`
	MaxSelect int      `json:"maxSelect"`
}

// RelationOptions holds attributes for relation fields.
type RelationOptions struct {
	CollectionID  string `json:"collectionId"`
	CascadeDelete bool   `json:"cascadeDelete"`
	MaxSelect     int    `json:"maxSelect"`
}

// FileOptions holds attributes for file fields.
type FileOptions struct {
	MaxSelect int      `json:"maxSelect"`
	MaxSize   int64    `json:"maxSize"`
	MimeTypes []string `json:"mimeTypes"`
}

// EditorOptions holds attributes for rich-text editor fields.
type EditorOptions struct {
	ConvertURLs bool `json:"convertUrls"`
}

// Field declares a single collection field. The options are a tagged
// variant keyed by Kind: at most one variant may be set, and it must match
// the declared kind. Kinds without a dedicated variant (email, url, date,
// json) may carry Extra attributes that are merged into the payload
// verbatim.
type Field struct {
	// Name is the field name, unique within its collection.
	Name string `json:"name"`
	// Kind is the field value type.
	Kind FieldKind `json:"kind"`
	// Required marks the field as mandatory on record writes.
	Required bool `json:"required,omitempty"`

	// Text holds options for text fields.
	Text *TextOptions `json:"text,omitempty"`
	// Number holds options for number fields.
	Number *NumberOptions `json:"number,omitempty"`
	// Select holds options for select fields.
	Select *SelectOptions `json:"select,omitempty"`
	// Relation holds options for relation fields.
	Relation *RelationOptions `json:"relation,omitempty"`
	// File holds options for file fields.
	File *FileOptions `json:"file,omitempty"`
	// Editor holds options for editor fields.
	Editor *EditorOptions `json:"editor,omitempty"`

	// Extra holds kind-specific attributes for kinds without a dedicated
	// options variant. Merged into the wire payload as-is.
	Extra map[string]any `json:"extra,omitempty"`
}

// Validate checks that the field is well formed and that its options
// variant matches its kind.
func (f Field) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if _, ok := knownKinds[f.Kind]; !ok {
		return fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
	}

	variants := map[FieldKind]bool{
		FieldText:     f.Text != nil,
		FieldNumber:   f.Number != nil,
		FieldSelect:   f.Select != nil,
		FieldRelation: f.Relation != nil,
		FieldFile:     f.File != nil,
		FieldEditor:   f.Editor != nil,
	}
	for kind, set := range variants {
		if set && kind != f.Kind {
			return fmt.Errorf("field %q: %s options set on %s field", f.Name, kind, f.Kind)
		}
	}
	return nil
}

// Collection declares a desired collection on the remote store. The Name is
// the natural key the reconciler matches against live server state.
type Collection struct {
	// Name is the collection name, unique within the registry.
	Name string `json:"name"`
	// Kind is the collection type (base, auth, view).
	Kind CollectionKind `json:"kind"`
	// Fields is the ordered field list. Names must be unique.
	Fields []Field `json:"fields"`
	// Indexes holds raw index definition strings.
	Indexes []string `json:"indexes,omitempty"`
	// Rules holds the five access-rule slots.
	Rules AccessRules `json:"rules"`
}

// Validate checks collection-level invariants: non-empty non-reserved name,
// known kind, valid fields with unique names.
func (c Collection) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("collection name is required")
	}
	// Names starting with "_" are reserved for systemic error reporting.
	if strings.HasPrefix(c.Name, "_") {
		return fmt.Errorf("collection %q: names starting with underscore are reserved", c.Name)
	}
	switch c.Kind {
	case KindBase, KindAuth, KindView:
	default:
		return fmt.Errorf("collection %q: unknown kind %q", c.Name, c.Kind)
	}

	seen := make(map[string]struct{}, len(c.Fields))
	for _, f := range c.Fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("collection %q: %w", c.Name, err)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("collection %q: duplicate field %q", c.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Registry is the caller-supplied, ordered list of desired collections.
// Order is preserved through reconciliation for deterministic output.
type Registry []Collection

// Validate checks every collection and rejects duplicate collection names.
func (r Registry) Validate() error {
	seen := make(map[string]struct{}, len(r))
	for _, c := range r {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate collection %q in registry", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
