package report

// GroupSet is a read-only set of known product-group names, loaded once from
// a reference resource. Names are stored normalized (trimmed, lowercased) so
// membership checks are insensitive to the formatting quirks of the report.
//
// A nil or empty set is valid: classification still works, ambiguous rows
// then fall through to the Warehouse/Product rules.
type GroupSet struct {
	names map[string]struct{}
}

// NewGroupSet builds a set from raw group names, normalizing each one.
// Blank names are ignored.
func NewGroupSet(names ...string) *GroupSet {
	s := &GroupSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if n := Normalize(name); n != "" {
			s.names[n] = struct{}{}
		}
	}
	return s
}

// Contains reports whether name (after normalization) is a known group.
func (s *GroupSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[Normalize(name)]
	return ok
}

// Len returns the number of known groups.
func (s *GroupSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
