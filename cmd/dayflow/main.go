package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"dayflow/internal/config"
	"dayflow/internal/engine"
	"dayflow/internal/llm"
	"dayflow/internal/templates"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiKey     string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dayflow",
	Short: "dayflow - LLM-backed daily schedule generation engine",
	Long: `dayflow turns a list of tasks into an ordered daily plan.

It categorizes tasks, retrieves matching example templates, builds a
retrieval-augmented ordering prompt for the completion service, and
assembles the response into a sectioned schedule. Every failure degrades:
the caller always gets a renderable schedule back.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// generateCmd runs the engine over one or more request payload files
var generateCmd = &cobra.Command{
	Use:   "generate [payload.json...]",
	Short: "Generate schedules from JSON request payloads",
	Long: `Reads one or more schedule request payloads (tasks, layout
preference, work hours, energy patterns, priorities) and writes the
generated schedule for each as JSON to <payload>.out.json.

Multiple payloads are processed concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

// templatesCmd groups template catalog operations
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Template catalog operations",
}

// templatesValidateCmd checks a catalog file parses and reports its contents
var templatesValidateCmd = &cobra.Command{
	Use:   "validate [catalog.json]",
	Short: "Validate a template catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesValidate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}

	client, err := llm.NewGeminiClient(llm.GeminiConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.ParsedTimeout(),
	})
	if err != nil {
		return err
	}

	store := templates.NewStore(cfg.Templates.Path, logger)
	if cfg.Templates.Watch {
		watcher, werr := templates.NewWatcher(store, logger)
		if werr != nil {
			return werr
		}
		if werr := watcher.Start(); werr != nil {
			return werr
		}
		defer watcher.Stop()
	}

	eng := engine.New(client, store, logger)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	for _, path := range args {
		g.Go(func() error {
			return generateOne(ctx, eng, path)
		})
	}
	return g.Wait()
}

func generateOne(ctx context.Context, eng *engine.Engine, path string) error {
	req, err := readRequest(path)
	if err != nil {
		return err
	}

	result := eng.Generate(ctx, req)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result for %s: %w", path, err)
	}
	outPath := path + ".out.json"
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logger.Info("schedule written",
		zap.String("input", path),
		zap.String("output", outPath),
		zap.Bool("success", result.Success),
		zap.Bool("fallback_used", result.FallbackUsed))
	return nil
}

func runTemplatesValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog templates.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	empty := 0
	for _, t := range catalog.Templates {
		if t.ID == "" || t.Subcategory == "" || len(t.Example) == 0 {
			empty++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d templates, %d incomplete\n",
		len(catalog.Templates), empty)
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "dayflow.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "completion service API key (overrides config)")

	templatesCmd.AddCommand(templatesValidateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
