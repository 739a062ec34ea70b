package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shopmind/internal/catalog"
	"shopmind/internal/config"
	"shopmind/internal/engine"
	"shopmind/internal/intent"
	"shopmind/internal/knowledge"
	"shopmind/internal/llm"
	"shopmind/internal/logging"
	"shopmind/internal/profile"
)

var (
	// Global flags
	configPath string
	verbose    bool
	profileID  string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopmind",
	Short: "shopmind - conversational product discovery engine",
	Long: `shopmind turns free-form shopper messages into classified intents,
extracted search entities, ranked product results, and adaptive replies.

The deterministic engine (Naive Bayes intent classifier, entity extraction,
catalog ranking, style-profiled composition) is always available; an optional
generative mode can delegate whole turns to an LLM with the deterministic
engine as fallback.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch interactive chat
		return runInteractiveChat(cmd.Context())
	},
}

// respondCmd runs a single turn and prints the full response as JSON
var respondCmd = &cobra.Command{
	Use:   "respond [message]",
	Short: "Process one message and print the full engine response as JSON",
	Long: `Runs a single message through the full pipeline and emits the complete
response shape: reply, intent, confidence, ranked products, quick links,
suggestions, and analysis metadata.

Example:
  shopmind respond "show me blue jackets under 100"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRespond,
}

// classifyCmd runs only the intent classifier
var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Classify a message and print the intent distribution",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shopmind.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&profileID, "profile-id", "", "style profile to use (default: new guest profile)")

	rootCmd.AddCommand(respondCmd)
	rootCmd.AddCommand(classifyCmd)
}

// buildEngine assembles the configured engine and its collaborators.
func buildEngine(ctx context.Context, cfg *config.Config) (engine.Engine, knowledge.Source, error) {
	if err := logging.Configure(cfg.Logging.Dir, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Categories: logging.CategorySet(cfg.Logging.Categories),
		Level:      cfg.Logging.Level,
	}); err != nil {
		logger.Warn("file logging unavailable", zap.Error(err))
	}

	var source knowledge.Source = knowledge.NewBuiltin()
	if cfg.Knowledge.Source == "file" {
		fileSource, err := knowledge.NewFileSource(cfg.Knowledge.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load knowledge file: %w", err)
		}
		if cfg.Knowledge.Watch {
			if _, err := knowledge.Watch(fileSource); err != nil {
				logger.Warn("knowledge watch unavailable", zap.Error(err))
			}
		}
		source = fileSource
	}

	var searcher catalog.Searcher
	switch cfg.Catalog.Backend {
	case "sqlite":
		s, err := catalog.NewSQLiteSearcher(cfg.Catalog.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		searcher = s
	default:
		searcher = catalog.NewGraphQLSearcher(cfg.Catalog.BaseURL)
	}

	var profiles profile.Store
	switch cfg.Profile.Backend {
	case "memory":
		profiles = profile.NewMemoryStore()
	case "http":
		profiles = profile.NewHTTPStore(cfg.Profile.BaseURL)
	default:
		s, err := profile.NewSQLiteStore(cfg.Profile.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open profile store: %w", err)
		}
		profiles = s
	}

	// Assigned only on success so a nil generator stays a nil interface.
	var generator engine.ReplyGenerator
	if cfg.LLM.APIKey != "" {
		g, err := llm.NewGenerator(ctx, llm.Config{
			APIKey:          cfg.LLM.APIKey,
			Model:           cfg.LLM.Model,
			MaxOutputTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			logger.Warn("llm generator unavailable, continuing without it", zap.Error(err))
		} else {
			generator = g
		}
	}

	deterministic := engine.NewDeterministic(source, searcher, profiles, generator)
	if cfg.Engine.Mode == "llm" {
		if generator == nil {
			logger.Warn("llm mode requested but no generator configured, using deterministic engine")
			return deterministic, source, nil
		}
		return engine.NewGenerativeOverride(generator, searcher, profiles, deterministic), source, nil
	}
	return deterministic, source, nil
}

func runRespond(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	eng, _, err := buildEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	resp, err := eng.Respond(cmd.Context(), engine.Request{
		Message:   strings.Join(args, " "),
		ProfileID: profileID,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logging.Configure(cfg.Logging.Dir, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Categories: logging.CategorySet(cfg.Logging.Categories),
		Level:      cfg.Logging.Level,
	}); err != nil {
		logger.Warn("file logging unavailable", zap.Error(err))
	}

	var source knowledge.Source = knowledge.NewBuiltin()
	if cfg.Knowledge.Source == "file" {
		fileSource, err := knowledge.NewFileSource(cfg.Knowledge.Path)
		if err != nil {
			return fmt.Errorf("load knowledge file: %w", err)
		}
		source = fileSource
	}

	classifier := intent.NewClassifier(intent.BuildModel(source), source)
	cls := classifier.Classify(strings.Join(args, " "))

	fmt.Printf("intent: %s (%.1f%%)\n\n", cls.Intent, cls.Confidence*100)
	for _, it := range intent.Intents {
		fmt.Printf("  %-16s %.4f\n", it, cls.Distribution[it])
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
