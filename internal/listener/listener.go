package listener

import (
	"context"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"gamemaster/internal/config"
	"gamemaster/internal/pipeline"
	"gamemaster/internal/storage"
)

type Service struct {
	cfg config.Config
	log *charmlog.Logger
}

type CycleResult struct {
	Templates int
	Creatures int
	Moves     int
	Paths     []string
}

func NewService(cfg config.Config, log *charmlog.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Run regenerates the catalogs once, then again every time the game master
// file settles after a change. Cycle errors are logged and the watch keeps
// going; Run returns nil when ctx is done.
func (s *Service) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors and the fetch command replace the file
	// by rename, which drops a watch placed on the file itself.
	target := filepath.Clean(s.cfg.GameMasterPath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	s.cycle()

	debounce := time.Duration(s.cfg.WatchDebounceMs) * time.Millisecond
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	s.log.Info("watching game master", "path", target, "debounce", debounce)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !isContentChange(event) {
				continue
			}
			s.log.Debug("game master changed", "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watch error", "err", err)
		case <-timer.C:
			s.cycle()
		}
	}
}

func (s *Service) cycle() {
	res, err := s.runCycle()
	if err != nil {
		s.log.Error("listener cycle error", "err", err)
		return
	}
	s.log.Info("listener cycle done", "templates", res.Templates, "creatures", res.Creatures, "moves", res.Moves)
}

func (s *Service) runCycle() (CycleResult, error) {
	store, err := storage.Open(s.cfg.GameMasterPath)
	if err != nil {
		return CycleResult{}, err
	}

	res, err := pipeline.NewProcessingService(s.log).Extract(store.Templates())
	if err != nil {
		return CycleResult{}, err
	}

	paths, err := pipeline.WriteCatalogs(res, s.cfg.OutputDir)
	if err != nil {
		return CycleResult{}, err
	}
	return CycleResult{
		Templates: store.Len(),
		Creatures: res.Creatures.Len(),
		Moves:     res.Moves.Len(),
		Paths:     paths,
	}, nil
}

func isContentChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
