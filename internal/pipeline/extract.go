package pipeline

import (
	"errors"
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"

	"gamemaster/internal"
	"gamemaster/internal/util"
)

var (
	ErrMissingIdentity = errors.New("missing identity field")
	ErrMalformedField  = errors.New("malformed settings field")
)

// ExtractionError aborts a whole extraction run.
type ExtractionError struct {
	TemplateID string
	Field      string
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("template %s: %s: %v", e.TemplateID, e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Elite moves are lists in current dumps and single strings in older ones;
// weak decoding accepts both.
type creatureSettings struct {
	PokemonID          string         `mapstructure:"pokemonId"`
	Form               string         `mapstructure:"form"`
	Type               string         `mapstructure:"type"`
	Type2              string         `mapstructure:"type2"`
	Stats              map[string]int `mapstructure:"stats"`
	QuickMoves         []string       `mapstructure:"quickMoves"`
	EliteQuickMove     []string       `mapstructure:"eliteQuickMove"`
	CinematicMoves     []string       `mapstructure:"cinematicMoves"`
	EliteCinematicMove []string       `mapstructure:"eliteCinematicMove"`
}

type combatMoveSettings struct {
	UniqueID      string             `mapstructure:"uniqueId"`
	Type          string             `mapstructure:"type"`
	Power         float64            `mapstructure:"power"`
	DurationTurns int                `mapstructure:"durationTurns"`
	EnergyDelta   int                `mapstructure:"energyDelta"`
	Buffs         map[string]float64 `mapstructure:"buffs"`
}

// ExtractCreature builds the battle entry of a creature template. number is
// the species number captured by Classify.
func ExtractCreature(t internal.Template, number int) (internal.CreatureEntry, error) {
	var settings creatureSettings
	if err := decodeSettings(t, internal.CreatureSettingsField, &settings); err != nil {
		return internal.CreatureEntry{}, err
	}
	if settings.PokemonID == "" {
		return internal.CreatureEntry{}, &ExtractionError{TemplateID: t.TemplateID, Field: "pokemonId", Err: ErrMissingIdentity}
	}

	entry := internal.CreatureEntry{
		Number:      number,
		IdentityKey: settings.PokemonID,
		FormKey:     util.FirstNonEmpty(settings.Form, t.TemplateID),
		Type:        typeSet(settings.Type, settings.Type2),
		Stats:       make(map[string]int, len(settings.Stats)),
		FastMoves:   fastMoveSet(settings.QuickMoves, settings.EliteQuickMove),
		ChargeMoves: chargeMoveSet(settings.CinematicMoves, settings.EliteCinematicMove),
	}
	maps.Copy(entry.Stats, settings.Stats)

	return entry, nil
}

func ExtractMove(t internal.Template) (internal.MoveEntry, error) {
	var settings combatMoveSettings
	if err := decodeSettings(t, internal.MoveSettingsField, &settings); err != nil {
		return internal.MoveEntry{}, err
	}
	if settings.UniqueID == "" {
		return internal.MoveEntry{}, &ExtractionError{TemplateID: t.TemplateID, Field: "uniqueId", Err: ErrMissingIdentity}
	}

	entry := internal.MoveEntry{
		Key:           util.NormalizeFastMove(settings.UniqueID),
		Type:          util.NormalizeType(settings.Type),
		Power:         settings.Power,
		DurationTurns: settings.DurationTurns,
		EnergyDelta:   settings.EnergyDelta,
	}
	if len(settings.Buffs) > 0 {
		entry.Buffs = maps.Clone(settings.Buffs)
	}

	return entry, nil
}

func decodeSettings(t internal.Template, field string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(t.Data[field]); err != nil {
		return &ExtractionError{TemplateID: t.TemplateID, Field: field, Err: fmt.Errorf("%w: %w", ErrMalformedField, err)}
	}
	return nil
}
