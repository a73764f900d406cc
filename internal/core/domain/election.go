package domain

// ElectionStatus is the single open/closed flag gating all ballot-affecting
// operations. Defaults to open; toggled only by an administrative actor.
type ElectionStatus struct {
	IsOpen bool `json:"is_open" bson:"is_open"`
}
