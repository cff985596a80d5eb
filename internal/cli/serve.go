package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/salientworks/salient/internal/config"
	"github.com/salientworks/salient/internal/delegate"
	"github.com/salientworks/salient/internal/journal"
	"github.com/salientworks/salient/internal/llm"
	"github.com/salientworks/salient/internal/memory"
	"github.com/salientworks/salient/internal/screen"
	"github.com/salientworks/salient/internal/server"
	"github.com/salientworks/salient/internal/usage"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Journal backs the eviction archive and the tool-usage log.
	dbPath := cfg.Journal.Path
	if dbPath == "" {
		dbPath, err = journal.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
	}
	db, err := journal.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer db.Close()

	var storeOpts []memory.Option
	if cfg.Memory.ArchiveEvictions {
		storeOpts = append(storeOpts, memory.WithOnEvict(func(e *memory.Entry) {
			switch e.Category {
			case memory.CategoryDecision, memory.CategoryInsight:
				if err := db.ArchiveEvicted(e); err != nil {
					log.Printf("archive eviction: %v", err)
				}
			}
		}))
	}
	mem, err := memory.New(cfg.Memory.Capacity, storeOpts...)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}

	opts := server.Options{
		Journal: db,
		Tracker: usage.New(uuid.New().String(), db, mem, cfg.Usage.PatternThreshold),
	}

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: LLM not configured (%v), delegation disabled\n", err)
	} else {
		opts.Delegator = delegate.New(llmClient, mem)
		fmt.Fprintf(os.Stderr, "  llm: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)

		shotDir := cfg.Screenshots.Dir
		if shotDir == "" {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return fmt.Errorf("resolve screenshot dir: %w", homeErr)
			}
			shotDir = filepath.Join(home, ".salient", "screenshots")
		}
		opts.Analyzer = screen.NewAnalyzer(screen.NewCapturer(shotDir), llmClient, mem)
	}

	srv := server.New(mem, VersionString(), opts)
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "salient serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  capacity: %d slots\n", mem.Cap())
		fmt.Fprintf(os.Stderr, "  journal: %s\n", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
