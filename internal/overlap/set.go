package overlap

import "sort"

// Set is a candidate set keyed by signature identity. At most one
// forwarding target exists per signature; Put and Merge overwrite, so when
// two sources could supply the same member the later write wins. Mix
// relies on last-write-wins to give its second operand precedence.
type Set struct {
	byKey map[string]Candidate
}

// NewSet creates an empty candidate set.
func NewSet() *Set {
	return &Set{byKey: make(map[string]Candidate)}
}

// Put inserts a candidate, replacing any candidate with the same signature.
func (s *Set) Put(c Candidate) {
	s.byKey[c.Member.SignatureKey()] = c
}

// Merge folds other into s, overwriting on signature collision. The
// receiver keeps losing entries only for signatures other lacks.
func (s *Set) Merge(other *Set) {
	for key, c := range other.byKey {
		s.byKey[key] = c
	}
}

// Remove drops every candidate whose member has the given name.
func (s *Set) Remove(name string) {
	for key, c := range s.byKey {
		if c.Member.Name == name {
			delete(s.byKey, key)
		}
	}
}

// Get returns the candidate registered for a signature key.
func (s *Set) Get(key string) (Candidate, bool) {
	c, ok := s.byKey[key]
	return c, ok
}

// Len returns the number of distinct signatures in the set.
func (s *Set) Len() int {
	return len(s.byKey)
}

// Candidates returns the candidates ordered by member name, then
// signature key. Storage is a set; this ordering exists only so rendered
// output is reproducible.
func (s *Set) Candidates() []Candidate {
	out := make([]Candidate, 0, len(s.byKey))
	for _, c := range s.byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Member.Name != out[j].Member.Name {
			return out[i].Member.Name < out[j].Member.Name
		}
		return out[i].Member.SignatureKey() < out[j].Member.SignatureKey()
	})
	return out
}
