package connectors

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"

	"gamemaster/internal/storage"
)

type FetchService struct {
	source Source
	store  *DumpStore
	log    *charmlog.Logger
}

type FetchResult struct {
	Bytes     int
	Templates int
	Hash      string
	Changed   bool
}

func NewFetchService(source Source, path string, log *charmlog.Logger) *FetchService {
	return &FetchService{
		source: source,
		store:  NewDumpStore(path),
		log:    log,
	}
}

// FetchAndStore downloads a dump and replaces the local copy only when the
// payload parses as a template array and differs from what is on disk.
func (s *FetchService) FetchAndStore(ctx context.Context) (FetchResult, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return FetchResult{}, err
	}

	store, err := storage.Parse(raw)
	if err != nil {
		return FetchResult{}, fmt.Errorf("%s: %w", s.source.Name(), err)
	}

	hash, changed, err := s.store.Store(raw)
	if err != nil {
		return FetchResult{}, err
	}

	res := FetchResult{Bytes: len(raw), Templates: store.Len(), Hash: hash, Changed: changed}
	if changed {
		s.log.Info("game master updated", "path", s.store.Path(), "templates", res.Templates, "sha256", hash[:12])
	} else {
		s.log.Info("game master unchanged", "path", s.store.Path(), "sha256", hash[:12])
	}
	return res, nil
}
