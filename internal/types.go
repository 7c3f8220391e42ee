package internal

import (
	"maps"

	"gamemaster/internal/util"
)

type TemplateKind string

const (
	KindCreature TemplateKind = "creature"
	KindMove     TemplateKind = "move"
	KindOther    TemplateKind = "other"
)

const (
	CreatureSettingsField = "pokemonSettings"
	MoveSettingsField     = "combatMove"
)

// Template is one record of the game master dump. Data is the decoded
// "data" object and may be nil when the record carries none.
type Template struct {
	TemplateID string
	Data       map[string]any
}

type CreatureEntry struct {
	Number      int
	IdentityKey string
	FormKey     string
	Type        util.StringSet
	Stats       map[string]int
	FastMoves   util.StringSet
	ChargeMoves util.StringSet
}

// Equal reports whether two entries describe the same battle creature.
// Keys are not compared: variants of one species differ only by form key.
func (e CreatureEntry) Equal(other CreatureEntry) bool {
	return e.Number == other.Number &&
		e.Type.Equal(other.Type) &&
		maps.Equal(e.Stats, other.Stats) &&
		e.FastMoves.Equal(other.FastMoves) &&
		e.ChargeMoves.Equal(other.ChargeMoves)
}

type MoveEntry struct {
	Key           string
	Type          string
	Power         float64
	DurationTurns int
	EnergyDelta   int
	Buffs         map[string]float64
}
