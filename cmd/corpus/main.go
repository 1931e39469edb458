package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"corpus_dashboard/internal/config"
	"corpus_dashboard/internal/db"
	"corpus_dashboard/internal/pipeline"
	"corpus_dashboard/internal/runlog"
	"corpus_dashboard/internal/server"
	"corpus_dashboard/internal/workspace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	root := &cobra.Command{
		Use:           "corpus",
		Short:         "Comparative corpus analysis and dashboard artifact server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cfg.Workspace, "workspace", cfg.Workspace, "workspace root (default ./"+workspace.DefaultDirName+")")

	root.AddCommand(newAnalyzeCmd(&cfg), newServeCmd(&cfg), newLogsCmd(&cfg), newHistoryCmd(&cfg))
	return root
}

func openWorkspace(cfg *config.Config) (workspace.Layout, error) {
	if cfg.Workspace == "" {
		return workspace.EnsureDefault()
	}
	return workspace.EnsureAt(cfg.Workspace)
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the corpus and write analysis.json and summary.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := openWorkspace(cfg)
			if err != nil {
				return err
			}
			var echo io.Writer
			if cfg.TraceProgress {
				echo = os.Stderr
			}
			archive, err := runlog.Open(layout, echo)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, runErr := pipeline.Analyze(ctx, layout, pipeline.Options{
				CorpusDir:    cfg.CorpusDir,
				Glob:         cfg.CorpusGlob,
				TitlePrefix:  cfg.TitlePrefix,
				Workers:      cfg.Workers,
				Analysis:     cfg.AnalysisOptions(),
				LexiconPath:  cfg.SentimentLexicon,
				ConceptsPath: cfg.Concepts,
				PersistDB:    cfg.DBEnabled,
			}, archive, archive.Progress)
			if res != nil {
				if _, err := archive.PersistRunSnapshot("analyze", res.Stats.RunID, res); err != nil {
					archive.Log(runlog.LevelRisk, "SNAPSHOT", "Run snapshot not written", err.Error())
				}
			}
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d texts, %d pairs", res.Stats.RunID, res.Stats.TextCount, res.Stats.PairCount)
			if res.Stats.FailedTexts > 0 {
				fmt.Fprintf(out, ", %d failed", res.Stats.FailedTexts)
			}
			fmt.Fprintf(out, "\nartifact: %s\nsummary:  %s\nlog:      %s\n", res.Stats.ArtifactPath, res.Stats.SummaryPath, archive.SessionFile())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.CorpusDir, "dir", cfg.CorpusDir, "corpus directory")
	f.StringVar(&cfg.CorpusGlob, "glob", cfg.CorpusGlob, "file pattern inside the corpus directory")
	f.StringVar(&cfg.TitlePrefix, "title-prefix", cfg.TitlePrefix, "prefix stripped from file names to form titles")
	f.StringVar(&cfg.Workspace, "out", cfg.Workspace, "workspace root receiving data/ and logs/")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "analysis workers (0 = one per CPU)")
	f.BoolVar(&cfg.DBEnabled, "db", cfg.DBEnabled, "record the run in the SQLite run history")
	f.StringVar(&cfg.SentimentLexicon, "lexicon", cfg.SentimentLexicon, "VADER-format lexicon file (default: full VADER lexicon)")
	f.StringVar(&cfg.Concepts, "concepts", cfg.Concepts, "concept dictionary YAML (default: embedded)")
	return cmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	var artifact string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a finished analysis artifact read-only over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if artifact == "" {
				layout, err := openWorkspace(cfg)
				if err != nil {
					return err
				}
				artifact = layout.AnalysisPath()
			}
			store, err := server.LoadStore(artifact)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.ServeAddr,
				Handler:           server.NewRouter(store, server.Options{AllowedOrigins: cfg.CORSOrigins, RequestLog: true}),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Printf("serving %s on %s", artifact, cfg.ServeAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.ServeAddr, "addr", cfg.ServeAddr, "listen address")
	cmd.Flags().StringVar(&artifact, "artifact", "", "analysis.json to serve (default: workspace data/analysis.json)")
	return cmd
}

func newLogsCmd(cfg *config.Config) *cobra.Command {
	logs := &cobra.Command{Use: "logs", Short: "Manage run logs"}
	logs.AddCommand(&cobra.Command{
		Use:   "export <dest.zip>",
		Short: "Bundle session logs and run snapshots into a zip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := openWorkspace(cfg)
			if err != nil {
				return err
			}
			if err := runlog.ExportDir(layout.Logs, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logs exported to %s\n", args[0])
			return nil
		},
	})
	return logs
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := openWorkspace(cfg)
			if err != nil {
				return err
			}
			runs, err := db.ListRuns(layout.DBPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs recorded")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  texts=%d  v%s  %s\n", r.Generated, r.ID, r.TotalTexts, r.AnalysisVersion, r.ArtifactPath)
			}
			return nil
		},
	}
}
