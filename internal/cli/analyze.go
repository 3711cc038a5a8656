package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"archlens/config"
	"archlens/internal/adapter/cache"
	"archlens/internal/adapter/chunker"
	"archlens/internal/adapter/fs"
	"archlens/internal/adapter/llm"
	"archlens/internal/adapter/store"
	"archlens/internal/port"
	"archlens/internal/usecase"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project and store the result",
	Long: `Analyze the project at the given path: code components, business entities
and processes, infrastructure services, and the dependency graph across all
three. The result is stored in .archlens/runs.db within the target directory.

Model responses are cached under the configured cache directory, so re-running
an analysis only pays for chunks that changed.

Examples:
  archlens analyze .                    # Analyze current directory
  archlens analyze /path/to/project -o result.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "also write the result as JSON to this file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	// Ctrl-C cancels in-flight model calls; partial work is discarded.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheDir := cfg.Cache.Dir
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(path, cacheDir)
	}
	responseCache, err := cache.NewResponseCache(cacheDir)
	if err != nil {
		return fmt.Errorf("failed to open response cache: %w", err)
	}

	model, err := newModel(cfg)
	if err != nil {
		return err
	}
	client := llm.NewClient(model, responseCache, cfg.LLM.BatchSize, cfg.LLM.SystemPrompt, slog.Default())

	walker := fs.NewWalker(cfg.Analysis.Languages, cfg.Analysis.Excludes)
	split := chunker.NewLineChunker(cfg.Analysis.ChunkOverlap)

	layers := make([]usecase.Layer, len(cfg.Analysis.Layers))
	for i, l := range cfg.Analysis.Layers {
		layers[i] = usecase.Layer{Name: l.Name, Patterns: l.Patterns, Context: l.Context}
	}

	codeUC := usecase.NewCodeUseCase(client, split, walker, cfg.Analysis.ChunkTokens, slog.Default())
	codeUC.Progress = newProgress()
	businessUC := usecase.NewBusinessUseCase(client, split, walker, layers, cfg.Analysis.ChunkTokens, slog.Default())
	depsUC := usecase.NewDepsUseCase(client, slog.Default())
	projectUC := usecase.NewProjectUseCase(codeUC, businessUC, depsUC, client.ExternalCalls, slog.Default())

	fmt.Printf("Analyzing %s with %s...\n", path, model.ModelName())

	result, err := projectUC.Analyze(ctx, path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := config.EnsureWorkDir(path); err != nil {
		return fmt.Errorf("failed to create .archlens directory: %w", err)
	}
	st, err := store.NewRunStore(config.RunDBPath(path))
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	run := store.Run{
		ID:        store.NewRunID(time.Now()),
		CreatedAt: time.Now().Unix(),
		Result:    *result,
	}
	if err := st.PutRun(run); err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}

	if analyzeOutput != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := os.WriteFile(analyzeOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", analyzeOutput, err)
		}
	}

	fmt.Printf("\nAnalysis complete:\n")
	fmt.Printf("  Files analyzed: %d (%d failed)\n", result.Stats.FilesAnalyzed, result.Stats.FilesFailed)
	fmt.Printf("  Chunks:         %d\n", result.Stats.ChunksAnalyzed)
	fmt.Printf("  Model calls:    %d\n", result.Stats.ExternalCalls)
	fmt.Printf("  Components:     %d\n", len(result.Components))
	fmt.Printf("  Entities:       %d\n", len(result.Entities))
	fmt.Printf("  Processes:      %d\n", len(result.Processes))
	fmt.Printf("  Services:       %d\n", len(result.Services))
	fmt.Printf("  Graph:          %d nodes, %d edges\n", len(result.Graph.Nodes), len(result.Graph.Edges))
	fmt.Printf("\nRun stored as %s\n", run.ID)
	return nil
}

// newModel builds the raw model client from the configured provider.
func newModel(cfg *config.Config) (port.LLM, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return llm.NewOpenAIClient(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.BaseURL,
			cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	case "mock":
		return llm.NewMock(), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

// newProgress returns a per-file progress callback backed by a lazily
// initialized progress bar.
func newProgress() func(done, total int) {
	var (
		mu  sync.Mutex
		bar *progressbar.ProgressBar
	)
	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Analyzing[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}
}
