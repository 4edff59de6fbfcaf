package roles

// Set is the invoking user's role labels as resolved by the host platform.
// It keeps the host's ordering so listings read the way the user sees them.
type Set struct {
	names []string
	index map[string]struct{}
}

// NewSet builds a Set from role labels. Duplicates are collapsed.
func NewSet(names ...string) Set {
	s := Set{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// Has reports whether the set contains name.
func (s Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// HasAny reports whether the set contains at least one of names.
func (s Set) HasAny(names ...string) bool {
	for _, n := range names {
		if s.Has(n) {
			return true
		}
	}
	return false
}

// Intersect returns the members of the set also present in allowed.
func (s Set) Intersect(allowed ...string) []string {
	want := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		want[a] = struct{}{}
	}

	var out []string
	for _, n := range s.names {
		if _, ok := want[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Names returns the labels in host order.
func (s Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of distinct labels.
func (s Set) Len() int {
	return len(s.names)
}
