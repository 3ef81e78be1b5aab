package main

import (
	"fmt"

	"github.com/medipoint-hq/medipoint-gateway/internal/app"
	"github.com/medipoint-hq/medipoint-gateway/internal/fixtures"
	"github.com/medipoint-hq/medipoint-gateway/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(rt *runtime) *cobra.Command {
	var once bool
	var publishersFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish dashboard snapshots to the configured sinks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if publishersFile != "" {
				rt.cfg.PublishersFile = publishersFile
			}
			gw, err := rt.open()
			if err != nil {
				return err
			}
			defer gw.Close()

			exp, err := app.NewExporter(cmd.Context(), rt.cfg, gw.API, gw.BaseURL(), rt.log)
			if err != nil {
				logger.ErrorObj("failed to initialize exporter", "error", err)
				return err
			}
			if once {
				defer exp.Close()
				return exp.RunOnce(cmd.Context())
			}
			if err := exp.Run(cmd.Context()); err != nil {
				return fmt.Errorf("exporter run: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Export a single round and exit")
	cmd.Flags().StringVar(&publishersFile, "publishers", "", "Override the publishers file")
	return cmd
}

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "fixtures [topics|suggestions|samples]",
		Short:     "Print the bundled sample data",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"topics", "suggestions", "samples"},
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := fixtures.Load()
			if err != nil {
				return err
			}
			var v any = set
			if len(args) == 1 {
				switch args[0] {
				case "topics":
					v = set.Topics
				case "suggestions":
					v = set.Suggestions
				case "samples":
					v = set.Samples
				}
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(v)
		},
	}
}
