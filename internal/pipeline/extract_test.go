package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamemaster/internal"
)

func bulbasaurSettings() map[string]any {
	return map[string]any{
		"pokemonId":      "BULBASAUR",
		"type":           "POKEMON_TYPE_GRASS",
		"type2":          "POKEMON_TYPE_POISON",
		"stats":          map[string]any{"baseAttack": float64(118)},
		"quickMoves":     []any{"VINE_WHIP_FAST"},
		"cinematicMoves": []any{"SEED_BOMB"},
	}
}

func TestExtractCreatureBulbasaur(t *testing.T) {
	tpl := creatureTemplate("V0001_POKEMON_BULBASAUR", bulbasaurSettings())

	entry, err := ExtractCreature(tpl, Classify(tpl).Number)
	require.NoError(t, err)

	assert.Equal(t, 1, entry.Number)
	assert.Equal(t, "BULBASAUR", entry.IdentityKey)
	assert.Equal(t, []string{"grass", "poison"}, entry.Type.Values())
	assert.Equal(t, map[string]int{"baseAttack": 118}, entry.Stats)
	assert.Equal(t, []string{"VINE_WHIP"}, entry.FastMoves.Values())
	assert.Equal(t, []string{"SEED_BOMB"}, entry.ChargeMoves.Values())
}

func TestExtractCreatureEliteMoves(t *testing.T) {
	cases := []struct {
		name      string
		eliteFast any
		eliteChrg any
	}{
		{name: "lists", eliteFast: []any{"LICK_FAST"}, eliteChrg: []any{"FRUSTRATION_FAST"}},
		{name: "single strings", eliteFast: "LICK_FAST", eliteChrg: "FRUSTRATION_FAST"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := map[string]any{
				"pokemonId":          "GENGAR",
				"form":               "GENGAR_NORMAL",
				"type":               "POKEMON_TYPE_GHOST",
				"quickMoves":         []any{"SHADOW_CLAW_FAST", "HEX_FAST"},
				"eliteQuickMove":     tc.eliteFast,
				"cinematicMoves":     []any{"SHADOW_BALL"},
				"eliteCinematicMove": tc.eliteChrg,
			}
			entry, err := ExtractCreature(creatureTemplate("V0094_POKEMON_GENGAR_NORMAL", settings), 94)
			require.NoError(t, err)

			assert.Equal(t, "GENGAR_NORMAL", entry.FormKey)
			assert.Equal(t, []string{"ghost"}, entry.Type.Values())
			assert.Equal(t, []string{"SHADOW_CLAW", "HEX", "LICK"}, entry.FastMoves.Values())
			// Charge moves are never normalized.
			assert.Equal(t, []string{"SHADOW_BALL", "FRUSTRATION_FAST"}, entry.ChargeMoves.Values())
		})
	}
}

func TestExtractCreatureSkipsAbsentValues(t *testing.T) {
	settings := map[string]any{
		"pokemonId":      "SNORLAX",
		"type":           "POKEMON_TYPE_NORMAL",
		"type2":          nil,
		"quickMoves":     []any{"LICK_FAST", nil, "LICK_FAST"},
		"cinematicMoves": []any{nil},
	}
	entry, err := ExtractCreature(creatureTemplate("V0143_POKEMON_SNORLAX", settings), 143)
	require.NoError(t, err)

	assert.Equal(t, []string{"normal"}, entry.Type.Values())
	assert.Equal(t, []string{"LICK"}, entry.FastMoves.Values())
	assert.Equal(t, 0, entry.ChargeMoves.Len())
	assert.Empty(t, entry.Stats)
}

func TestExtractCreatureDuplicateTypesCollapse(t *testing.T) {
	settings := map[string]any{"pokemonId": "X", "type": "POKEMON_TYPE_FIRE", "type2": "fire"}
	entry, err := ExtractCreature(creatureTemplate("V0001_POKEMON_X", settings), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"fire"}, entry.Type.Values())
}

func TestExtractCreatureFormFallsBackToTemplateID(t *testing.T) {
	entry, err := ExtractCreature(creatureTemplate("V0025_POKEMON_PIKACHU", map[string]any{"pokemonId": "PIKACHU"}), 25)
	require.NoError(t, err)
	assert.Equal(t, "V0025_POKEMON_PIKACHU", entry.FormKey)
}

func TestExtractCreatureMissingIdentity(t *testing.T) {
	settings := bulbasaurSettings()
	delete(settings, "pokemonId")

	_, err := ExtractCreature(creatureTemplate("V0001_POKEMON_BULBASAUR", settings), 1)
	require.ErrorIs(t, err, ErrMissingIdentity)

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "V0001_POKEMON_BULBASAUR", extractErr.TemplateID)
	assert.Equal(t, "pokemonId", extractErr.Field)
}

func TestExtractCreatureMalformedStats(t *testing.T) {
	settings := bulbasaurSettings()
	settings["stats"] = map[string]any{"baseAttack": map[string]any{"nested": true}}

	_, err := ExtractCreature(creatureTemplate("V0001_POKEMON_BULBASAUR", settings), 1)
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestExtractMoveTackle(t *testing.T) {
	tpl := moveTemplate("COMBAT_V0005_MOVE_TACKLE_FAST", map[string]any{
		"uniqueId":      "TACKLE_FAST",
		"type":          "POKEMON_TYPE_NORMAL",
		"power":         float64(12),
		"durationTurns": float64(1),
		"energyDelta":   float64(5),
	})

	entry, err := ExtractMove(tpl)
	require.NoError(t, err)
	assert.Equal(t, internal.MoveEntry{Key: "TACKLE", Type: "normal", Power: 12, DurationTurns: 1, EnergyDelta: 5}, entry)
}

func TestExtractMoveChargeWithBuffs(t *testing.T) {
	tpl := moveTemplate("COMBAT_V0245_MOVE_CLOSE_COMBAT", map[string]any{
		"uniqueId":    "CLOSE_COMBAT",
		"type":        "POKEMON_TYPE_FIGHTING",
		"power":       float64(100),
		"energyDelta": float64(-45),
		"buffs": map[string]any{
			"targetDefenseStatStageChange": float64(-2),
			"buffActivationChance":         float64(1),
		},
	})

	entry, err := ExtractMove(tpl)
	require.NoError(t, err)
	assert.Equal(t, "CLOSE_COMBAT", entry.Key)
	assert.Equal(t, "fighting", entry.Type)
	assert.Equal(t, 0, entry.DurationTurns)
	assert.Equal(t, -45, entry.EnergyDelta)
	assert.Equal(t, map[string]float64{"targetDefenseStatStageChange": -2, "buffActivationChance": 1}, entry.Buffs)
}

func TestExtractMoveMissingIdentity(t *testing.T) {
	_, err := ExtractMove(moveTemplate("COMBAT_V0005_MOVE_TACKLE_FAST", map[string]any{"power": float64(12)}))
	assert.ErrorIs(t, err, ErrMissingIdentity)
}
