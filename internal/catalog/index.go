package catalog

import "strings"

// Index is the immutable, ordered set of known names
type Index struct {
	names []string
}

// NewIndex builds an index from names, keeping their order
func NewIndex(names []string) *Index {
	own := make([]string, len(names))
	copy(own, names)
	return &Index{names: own}
}

// Len returns the number of names
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.names)
}

// Names returns a copy of the names in index order
func (i *Index) Names() []string {
	if i == nil {
		return nil
	}
	out := make([]string, len(i.names))
	copy(out, i.names)
	return out
}

// Filter returns every name whose lower-cased form contains the lower-cased
// query, in index order. The query is not trimmed.
func (i *Index) Filter(query string) []string {
	if i == nil {
		return nil
	}
	query = strings.ToLower(query)

	var out []string
	for _, name := range i.names {
		if strings.Contains(strings.ToLower(name), query) {
			out = append(out, name)
		}
	}
	return out
}
