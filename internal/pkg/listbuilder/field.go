// Package listbuilder composes filtered, sorted and paginated projections over
// a base table from a declarative table of field descriptors.
package listbuilder

const (
	TypeDate        = "date"
	TypeTranslation = "translation"
)

// Join describes a LEFT JOIN a field depends on. Joins are deduplicated by Alias.
type Join struct {
	Table string
	Alias string
	On    string
}

// Field describes a logical list column: the SQL expression it is read from,
// the joins it needs and how clients should present it.
type Field struct {
	Name        string `json:"name"`
	Translation string `json:"translation"`
	Disabled    bool   `json:"disabled"`
	Default     bool   `json:"default"`
	Type        string `json:"type"`
	Width       string `json:"width"`
	MinWidth    string `json:"minWidth"`
	Sortable    bool   `json:"sortable"`

	Expr  string `json:"-"`
	Joins []Join `json:"-"`
}

// Schema is an ordered set of fields.
type Schema []*Field

// Get returns the field with the given name.
func (s Schema) Get(name string) (*Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Defaults returns the fields shown when a client does not choose any. The
// first field is always included so that rows stay addressable.
func (s Schema) Defaults() []*Field {
	var fields []*Field
	for i, f := range s {
		if f.Default || i == 0 {
			fields = append(fields, f)
		}
	}
	return fields
}
