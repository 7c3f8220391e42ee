package util

import "strings"

const (
	typePrefix     = "POKEMON_TYPE_"
	fastMoveSuffix = "_FAST"
)

// NormalizeType turns "POKEMON_TYPE_GRASS" into "grass". Values without the
// prefix are only lowercased.
func NormalizeType(raw string) string {
	return strings.ToLower(strings.TrimPrefix(raw, typePrefix))
}

// NormalizeFastMove turns "VINE_WHIP_FAST" into "VINE_WHIP".
func NormalizeFastMove(raw string) string {
	return strings.TrimSuffix(raw, fastMoveSuffix)
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
