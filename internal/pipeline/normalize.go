package pipeline

import "gamemaster/internal/util"

// Absent values arrive as empty strings and are skipped before normalizing.

func typeSet(types ...string) util.StringSet {
	var out util.StringSet
	for _, raw := range types {
		if raw != "" {
			out.Add(util.NormalizeType(raw))
		}
	}
	return out
}

func fastMoveSet(groups ...[]string) util.StringSet {
	var out util.StringSet
	for _, group := range groups {
		for _, move := range group {
			if move != "" {
				out.Add(util.NormalizeFastMove(move))
			}
		}
	}
	return out
}

// Charge move names are kept as they appear in the dump.
func chargeMoveSet(groups ...[]string) util.StringSet {
	var out util.StringSet
	for _, group := range groups {
		for _, move := range group {
			if move != "" {
				out.Add(move)
			}
		}
	}
	return out
}
