package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gamemaster/internal/config"
	"gamemaster/internal/connectors"
	httpconnector "gamemaster/internal/connectors/http"
	"gamemaster/internal/listener"
	"gamemaster/internal/logger"
	"gamemaster/internal/pipeline"
	"gamemaster/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := logger.New(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	must(rootCmd(cfg, log).Execute())
}

func rootCmd(cfg config.Config, log *charmlog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "gamemaster",
		Short:         "Build creature and move catalogs from a game master dump",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		extractCmd(cfg, log),
		generateCmd(cfg, log),
		settingsCmd(cfg),
		exportCmd(cfg, log),
		fetchCmd(cfg, log),
		watchCmd(cfg, log),
	)
	return root
}

func extractCmd(cfg config.Config, log *charmlog.Logger) *cobra.Command {
	var moves bool
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the creature catalog (or --moves the move catalog) as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := extract(cfg, log)
			if err != nil {
				return err
			}
			var blob []byte
			if moves {
				blob, err = pipeline.MovesJSON(res.Moves)
			} else {
				blob, err = pipeline.CreaturesJSON(res.Creatures)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(blob)
			return err
		},
	}
	cmd.Flags().BoolVar(&moves, "moves", false, "print the move catalog instead")
	return cmd
}

func generateCmd(cfg config.Config, log *charmlog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write pokemon.json and moves.json into OUTPUT_DIR",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := extract(cfg, log)
			if err != nil {
				return err
			}
			paths, err := pipeline.WriteCatalogs(res, cfg.OutputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated creatures=%d moves=%d files=%s\n",
				res.Creatures.Len(), res.Moves.Len(), strings.Join(paths, ","))
			return nil
		},
	}
}

func settingsCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print raw pokemonSettings keyed by templateId",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.Open(cfg.GameMasterPath)
			if err != nil {
				return err
			}
			blob, err := pipeline.SettingsJSON(pipeline.PokemonSettings(store.Templates()))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(blob)
			return err
		},
	}
}

func exportCmd(cfg config.Config, log *charmlog.Logger) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export:xlsx",
		Short: "Export both catalogs to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			res, err := extract(cfg, log)
			if err != nil {
				return err
			}
			if err := pipeline.ExportCatalogsToXLSX(res, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported creatures=%d moves=%d to %s\n", res.Creatures.Len(), res.Moves.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output xlsx path")
	return cmd
}

func fetchCmd(cfg config.Config, log *charmlog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the game master from GAME_MASTER_URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := httpconnector.NewConnector(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			res, err := connectors.NewFetchService(conn, cfg.GameMasterPath, log).FetchAndStore(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fetch done templates=%d bytes=%d changed=%t\n", res.Templates, res.Bytes, res.Changed)
			return nil
		},
	}
}

func watchCmd(cfg config.Config, log *charmlog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the catalogs whenever the game master changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return listener.NewService(cfg, log).Run(ctx)
		},
	}
}

func extract(cfg config.Config, log *charmlog.Logger) (pipeline.Result, error) {
	store, err := storage.Open(cfg.GameMasterPath)
	if err != nil {
		return pipeline.Result{}, err
	}
	return pipeline.NewProcessingService(log).Extract(store.Templates())
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
