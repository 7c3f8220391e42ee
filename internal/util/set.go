package util

// StringSet is a set of strings that remembers the order in which members
// were first added. The zero value is an empty set ready to use.
type StringSet struct {
	order   []string
	members map[string]struct{}
}

func NewStringSet(values ...string) StringSet {
	s := StringSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *StringSet) Add(value string) {
	if s.members == nil {
		s.members = map[string]struct{}{}
	}
	if _, ok := s.members[value]; ok {
		return
	}
	s.members[value] = struct{}{}
	s.order = append(s.order, value)
}

func (s StringSet) Has(value string) bool {
	_, ok := s.members[value]
	return ok
}

func (s StringSet) Len() int {
	return len(s.order)
}

// Values returns a copy of the members in first-insertion order, never nil.
func (s StringSet) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Equal ignores insertion order.
func (s StringSet) Equal(other StringSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.order {
		if !other.Has(v) {
			return false
		}
	}
	return true
}
