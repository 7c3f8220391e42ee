package pipeline

import (
	"time"

	charmlog "github.com/charmbracelet/log"

	"gamemaster/internal"
	"gamemaster/internal/catalog"
)

type Result struct {
	Creatures *catalog.Catalog[internal.CreatureEntry]
	Moves     *catalog.Catalog[internal.MoveEntry]
	Counts    Counts
}

type Counts struct {
	Templates      int
	Other          int
	Creatures      int
	Duplicates     int
	Variants       int
	Conflicts      int
	FormOverwrites int
	Moves          int
	MoveOverwrites int
}

// ExtractCreatures folds every creature template into the identity-keyed
// catalog. The first extraction error aborts the fold.
func ExtractCreatures(templates []internal.Template) (*catalog.Catalog[internal.CreatureEntry], error) {
	var counts Counts
	return extractCreatures(templates, &counts, nil)
}

// ExtractMoves keys combat moves by canonical name; later templates win.
func ExtractMoves(templates []internal.Template) (*catalog.Catalog[internal.MoveEntry], error) {
	var counts Counts
	return extractMoves(templates, &counts)
}

// PokemonSettings returns the raw settings object of every creature
// template keyed by template id.
func PokemonSettings(templates []internal.Template) *catalog.Catalog[map[string]any] {
	out := catalog.New[map[string]any]()
	for _, t := range templates {
		if Classify(t).Kind != internal.KindCreature {
			continue
		}
		settings, _ := t.Data[internal.CreatureSettingsField].(map[string]any)
		out.Insert(t.TemplateID, settings)
	}
	return out
}

func extractCreatures(templates []internal.Template, counts *Counts, onVariant func(internal.CreatureEntry, MergeResult)) (*catalog.Catalog[internal.CreatureEntry], error) {
	merger := NewMerger()
	for _, t := range templates {
		class := Classify(t)
		if class.Kind != internal.KindCreature {
			continue
		}
		entry, err := ExtractCreature(t, class.Number)
		if err != nil {
			return nil, err
		}
		res := merger.Add(entry)
		switch res.Outcome {
		case OutcomeInserted:
			counts.Creatures++
		case OutcomeDuplicate:
			counts.Duplicates++
		case OutcomeVariant:
			counts.Variants++
			if res.Overwrote {
				counts.FormOverwrites++
			}
		case OutcomeConflict:
			counts.Conflicts++
		}
		if onVariant != nil && (res.Overwrote || res.Outcome == OutcomeConflict) {
			onVariant(entry, res)
		}
	}
	return merger.Catalog(), nil
}

func extractMoves(templates []internal.Template, counts *Counts) (*catalog.Catalog[internal.MoveEntry], error) {
	out := catalog.New[internal.MoveEntry]()
	for _, t := range templates {
		if Classify(t).Kind != internal.KindMove {
			continue
		}
		entry, err := ExtractMove(t)
		if err != nil {
			return nil, err
		}
		if out.Insert(entry.Key, entry) {
			counts.MoveOverwrites++
		}
	}
	counts.Moves = out.Len()
	return out, nil
}

type ProcessingService struct {
	log *charmlog.Logger
}

func NewProcessingService(log *charmlog.Logger) *ProcessingService {
	return &ProcessingService{log: log}
}

// Extract builds both catalogs from one template sequence. On error no
// catalog is returned.
func (s *ProcessingService) Extract(templates []internal.Template) (Result, error) {
	start := time.Now()
	counts := Counts{Templates: len(templates)}
	for _, t := range templates {
		if Classify(t).Kind == internal.KindOther {
			counts.Other++
		}
	}

	creatures, err := extractCreatures(templates, &counts, func(entry internal.CreatureEntry, res MergeResult) {
		s.log.Warn("creature variant collided", "identity", entry.IdentityKey, "form", entry.FormKey, "outcome", string(res.Outcome))
	})
	if err != nil {
		return Result{}, err
	}
	moves, err := extractMoves(templates, &counts)
	if err != nil {
		return Result{}, err
	}

	s.log.Info("extraction done",
		"templates", counts.Templates,
		"creatures", creatures.Len(),
		"duplicates", counts.Duplicates,
		"variants", counts.Variants,
		"moves", counts.Moves,
		"took", time.Since(start).Round(time.Millisecond))

	return Result{Creatures: creatures, Moves: moves, Counts: counts}, nil
}
