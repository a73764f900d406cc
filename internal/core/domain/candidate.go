package domain

// Candidate is reference data supplied by the roster provider. The election
// core never mutates it.
type Candidate struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Position string `json:"position" bson:"position"`
}

// Roster is an ordered candidate list with O(1) membership lookup.
// Order is significant: it is the tie-break for tally rankings.
type Roster struct {
	Candidates []Candidate
	index      map[string]int
}

// NewRoster builds a Roster preserving the provider's ordering.
func NewRoster(candidates []Candidate) *Roster {
	idx := make(map[string]int, len(candidates))
	for i, c := range candidates {
		idx[c.ID] = i
	}
	return &Roster{Candidates: candidates, index: idx}
}

// Contains reports whether id refers to a roster candidate.
func (r *Roster) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Position returns the roster index of id, or -1 when absent.
func (r *Roster) Position(id string) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return i
}

// Name returns the candidate name for id, or "" when absent.
func (r *Roster) Name(id string) string {
	i, ok := r.index[id]
	if !ok {
		return ""
	}
	return r.Candidates[i].Name
}
