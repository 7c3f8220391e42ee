package pipeline

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/pretty"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/xuri/excelize/v2"

	"gamemaster/internal"
	"gamemaster/internal/catalog"
)

const (
	PokemonFile = "pokemon.json"
	MovesFile   = "moves.json"
)

type record = orderedmap.OrderedMap[string, any]

// Stats are flattened into the entry in key order; set fields become arrays
// in first-seen order.
func creatureRecord(e internal.CreatureEntry) *record {
	r := orderedmap.New[string, any]()
	r.Set("number", e.Number)
	r.Set("type", e.Type.Values())
	for _, name := range sortedKeys(e.Stats) {
		r.Set(name, e.Stats[name])
	}
	r.Set("fastMoves", e.FastMoves.Values())
	r.Set("chargeMoves", e.ChargeMoves.Values())
	return r
}

func moveRecord(e internal.MoveEntry) *record {
	r := orderedmap.New[string, any]()
	r.Set("type", e.Type)
	r.Set("power", e.Power)
	r.Set("durationTurns", e.DurationTurns)
	r.Set("energyDelta", e.EnergyDelta)
	for _, name := range sortedKeys(e.Buffs) {
		r.Set(name, e.Buffs[name])
	}
	return r
}

func catalogJSON[V any](c *catalog.Catalog[V], toRecord func(V) any) ([]byte, error) {
	out := orderedmap.New[string, any]()
	c.Each(func(key string, value V) bool {
		out.Set(key, toRecord(value))
		return true
	})
	blob, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(blob), nil
}

func CreaturesJSON(c *catalog.Catalog[internal.CreatureEntry]) ([]byte, error) {
	return catalogJSON(c, func(e internal.CreatureEntry) any { return creatureRecord(e) })
}

func MovesJSON(c *catalog.Catalog[internal.MoveEntry]) ([]byte, error) {
	return catalogJSON(c, func(e internal.MoveEntry) any { return moveRecord(e) })
}

func SettingsJSON(c *catalog.Catalog[map[string]any]) ([]byte, error) {
	return catalogJSON(c, func(settings map[string]any) any { return settings })
}

func WriteJSON(path string, blob []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

// WriteCatalogs writes pokemon.json and moves.json into dir and returns the
// written paths.
func WriteCatalogs(res Result, dir string) ([]string, error) {
	creatures, err := CreaturesJSON(res.Creatures)
	if err != nil {
		return nil, err
	}
	moves, err := MovesJSON(res.Moves)
	if err != nil {
		return nil, err
	}

	paths := []string{filepath.Join(dir, PokemonFile), filepath.Join(dir, MovesFile)}
	for i, blob := range [][]byte{creatures, moves} {
		if err := WriteJSON(paths[i], blob); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func ExportCatalogsToXLSX(res Result, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "pokemon"); err != nil {
		return err
	}
	if _, err := f.NewSheet("moves"); err != nil {
		return err
	}

	statNames := map[string]struct{}{}
	res.Creatures.Each(func(_ string, e internal.CreatureEntry) bool {
		for name := range e.Stats {
			statNames[name] = struct{}{}
		}
		return true
	})
	stats := sortedKeys(statNames)

	headers := append([]string{"key", "number", "type"}, stats...)
	headers = append(headers, "fastMoves", "chargeMoves")
	rows := [][]any{}
	res.Creatures.Each(func(key string, e internal.CreatureEntry) bool {
		row := []any{key, e.Number, strings.Join(e.Type.Values(), ", ")}
		for _, name := range stats {
			if v, ok := e.Stats[name]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		row = append(row, strings.Join(e.FastMoves.Values(), ", "), strings.Join(e.ChargeMoves.Values(), ", "))
		rows = append(rows, row)
		return true
	})
	writeSheet(f, "pokemon", headers, rows)

	buffNames := map[string]struct{}{}
	res.Moves.Each(func(_ string, e internal.MoveEntry) bool {
		for name := range e.Buffs {
			buffNames[name] = struct{}{}
		}
		return true
	})
	buffs := sortedKeys(buffNames)

	headers = append([]string{"key", "type", "power", "durationTurns", "energyDelta"}, buffs...)
	rows = rows[:0]
	res.Moves.Each(func(key string, e internal.MoveEntry) bool {
		row := []any{key, e.Type, e.Power, e.DurationTurns, e.EnergyDelta}
		for _, name := range buffs {
			if v, ok := e.Buffs[name]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
		return true
	})
	writeSheet(f, "moves", headers, rows)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
