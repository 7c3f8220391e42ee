package pipeline

import (
	"gamemaster/internal"
	"gamemaster/internal/catalog"
)

type MergeOutcome string

const (
	OutcomeInserted  MergeOutcome = "inserted"
	OutcomeDuplicate MergeOutcome = "duplicate"
	OutcomeVariant   MergeOutcome = "variant"
	// OutcomeConflict drops a differing entry whose form key is its own
	// identity key, since the identity entry is never replaced.
	OutcomeConflict MergeOutcome = "conflict"
)

type MergeResult struct {
	Outcome MergeOutcome
	Key     string
	// Overwrote is set when a variant landed on a form key that was already
	// taken. The earlier entry is lost; form keys are not guarded.
	Overwrote bool
}

// Merger folds creature entries, in source order, into an identity-keyed
// catalog. The first entry seen for an identity key owns it; later entries
// that differ are filed under their form key instead.
type Merger struct {
	out *catalog.Catalog[internal.CreatureEntry]
}

func NewMerger() *Merger {
	return &Merger{out: catalog.New[internal.CreatureEntry]()}
}

func (m *Merger) Add(entry internal.CreatureEntry) MergeResult {
	prev, ok := m.out.Get(entry.IdentityKey)
	if !ok {
		m.out.Insert(entry.IdentityKey, entry)
		return MergeResult{Outcome: OutcomeInserted, Key: entry.IdentityKey}
	}
	if prev.Equal(entry) {
		return MergeResult{Outcome: OutcomeDuplicate, Key: entry.IdentityKey}
	}
	if entry.FormKey == entry.IdentityKey {
		return MergeResult{Outcome: OutcomeConflict, Key: entry.IdentityKey}
	}
	overwrote := m.out.Insert(entry.FormKey, entry)
	return MergeResult{Outcome: OutcomeVariant, Key: entry.FormKey, Overwrote: overwrote}
}

func (m *Merger) Catalog() *catalog.Catalog[internal.CreatureEntry] {
	return m.out
}
