package pipeline

import (
	"regexp"
	"strconv"

	"gamemaster/internal"
)

var (
	creatureIDPattern = regexp.MustCompile(`^V(\d+)_POKEMON_`)
	moveIDPattern     = regexp.MustCompile(`^COMBAT_V\d+_MOVE_`)
)

type Classification struct {
	Kind internal.TemplateKind
	// Number is the species number of a creature template, zero otherwise.
	Number int
}

// Classify never fails: anything that is not a well-formed creature or
// combat move template is KindOther.
func Classify(t internal.Template) Classification {
	if m := creatureIDPattern.FindStringSubmatch(t.TemplateID); m != nil {
		if !hasObject(t.Data, internal.CreatureSettingsField) {
			return Classification{Kind: internal.KindOther}
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			return Classification{Kind: internal.KindOther}
		}
		return Classification{Kind: internal.KindCreature, Number: number}
	}

	if moveIDPattern.MatchString(t.TemplateID) && hasObject(t.Data, internal.MoveSettingsField) {
		return Classification{Kind: internal.KindMove}
	}

	return Classification{Kind: internal.KindOther}
}

func hasObject(data map[string]any, field string) bool {
	_, ok := data[field].(map[string]any)
	return ok
}
