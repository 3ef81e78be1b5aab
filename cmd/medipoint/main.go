package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/medipoint-hq/medipoint-gateway/internal/app"
	"github.com/medipoint-hq/medipoint-gateway/internal/config"
	"github.com/medipoint-hq/medipoint-gateway/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "medipoint: %v\n", err)
		os.Exit(1)
	}
}

// flags overriding values loaded from the environment.
type rootFlags struct {
	baseURL        string
	timeoutMs      int
	tokenStoreType string
	tokenStorePath string
	debug          bool
}

// runtime is resolved once per invocation before any subcommand runs.
type runtime struct {
	cfg *config.Config
	log logger.Logger
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "medipoint",
		Short:         "Query the MediPoint dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd, flags)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Close()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.baseURL, "base-url", "", "Override the API base URL")
	pf.IntVar(&flags.timeoutMs, "timeout-ms", 0, "Override the request timeout in milliseconds")
	pf.StringVar(&flags.tokenStoreType, "token-store-type", "", "Token store backend (bbolt, none)")
	pf.StringVar(&flags.tokenStorePath, "token-store", "", "Path of the bbolt token store")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(newKPICmd(rt))
	rootCmd.AddCommand(newTopicsCmd(rt))
	rootCmd.AddCommand(newTopicCmd(rt))
	rootCmd.AddCommand(newSuggestionsCmd(rt))
	rootCmd.AddCommand(newSuggestionCmd(rt))
	rootCmd.AddCommand(newSamplesCmd(rt))
	rootCmd.AddCommand(newSampleCmd(rt))
	rootCmd.AddCommand(newChartsCmd(rt))
	rootCmd.AddCommand(newERPCmd(rt))
	rootCmd.AddCommand(newTokenCmd(rt))
	rootCmd.AddCommand(newFixturesCmd())
	rootCmd.AddCommand(newExportCmd(rt))

	return rootCmd
}

func (rt *runtime) init(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.baseURL != "" {
		cfg.APIBaseURL = flags.baseURL
	}
	if flags.timeoutMs > 0 {
		cfg.APITimeoutMs = flags.timeoutMs
	}
	if flags.tokenStoreType != "" {
		cfg.TokenStoreType = flags.tokenStoreType
	}
	if flags.tokenStorePath != "" {
		cfg.TokenStorePath = flags.tokenStorePath
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.cfg, rt.log = cfg, log
	log.DebugObj("command starting", "command", cmd.CommandPath())
	return nil
}

// open builds a gateway; the caller closes it so the token store is released
// even when the command fails.
func (rt *runtime) open() (*app.Gateway, error) {
	gw, err := app.NewGateway(rt.cfg, rt.log)
	if err != nil {
		return nil, err
	}
	rt.log.DebugObj("gateway ready", "base_url", gw.BaseURL())
	return gw, nil
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
