package main

import (
	"context"
	"encoding/json"

	"github.com/medipoint-hq/medipoint-gateway/pkg/medipoint"
	"github.com/spf13/cobra"
)

type fetchFunc func(ctx context.Context, api *medipoint.API, args []string) (json.RawMessage, error)

// catalogCmd wires a single catalog operation to a command printing its payload.
func catalogCmd(rt *runtime, use, short string, args cobra.PositionalArgs, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := rt.open()
			if err != nil {
				return err
			}
			defer gw.Close()

			raw, err := fetch(cmd.Context(), gw.API, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
}

func newKPICmd(rt *runtime) *cobra.Command {
	return catalogCmd(rt, "kpi", "Show the KPI summary", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetKPISummary(ctx)
		})
}

func newTopicsCmd(rt *runtime) *cobra.Command {
	var p medipoint.TopicParams
	cmd := catalogCmd(rt, "topics", "List trending topics", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetTopics(ctx, p)
		})
	cmd.Flags().StringVar(&p.Category, "category", "", "Category filter (all, health, maternal, prescription)")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "Maximum number of topics")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "Sort order")
	return cmd
}

func newTopicCmd(rt *runtime) *cobra.Command {
	return catalogCmd(rt, "topic <id>", "Show a single topic", cobra.ExactArgs(1),
		func(ctx context.Context, api *medipoint.API, args []string) (json.RawMessage, error) {
			return api.GetTopicByID(ctx, args[0])
		})
}

func newSuggestionsCmd(rt *runtime) *cobra.Command {
	var p medipoint.SuggestionParams
	cmd := catalogCmd(rt, "suggestions", "List stocking suggestions", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetSuggestions(ctx, p)
		})
	cmd.Flags().StringVar(&p.TopicID, "topic-id", "", "Only suggestions for this topic")
	cmd.Flags().StringVar(&p.Priority, "priority", "", "Priority filter (high, medium, low)")
	return cmd
}

func newSuggestionCmd(rt *runtime) *cobra.Command {
	return catalogCmd(rt, "suggestion <id>", "Show a single suggestion", cobra.ExactArgs(1),
		func(ctx context.Context, api *medipoint.API, args []string) (json.RawMessage, error) {
			return api.GetSuggestionByID(ctx, args[0])
		})
}

func newSamplesCmd(rt *runtime) *cobra.Command {
	var p medipoint.SampleParams
	cmd := catalogCmd(rt, "samples", "List social media samples", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetSamples(ctx, p)
		})
	f := cmd.Flags()
	f.StringVar(&p.TopicID, "topic-id", "", "Only samples for this topic")
	f.StringVar(&p.Label, "label", "", "Only samples carrying this label")
	f.StringVar(&p.Source, "source", "", "Only samples from this source")
	f.IntVar(&p.Limit, "limit", 0, "Page size")
	f.IntVar(&p.Offset, "offset", 0, "Page offset")
	return cmd
}

func newSampleCmd(rt *runtime) *cobra.Command {
	return catalogCmd(rt, "sample <id>", "Show a single sample", cobra.ExactArgs(1),
		func(ctx context.Context, api *medipoint.API, args []string) (json.RawMessage, error) {
			return api.GetSampleByID(ctx, args[0])
		})
}

func newChartsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Chart datasets",
	}
	cmd.AddCommand(catalogCmd(rt, "topic-scores", "Topic score chart", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetChartTopicScores(ctx)
		}))
	cmd.AddCommand(catalogCmd(rt, "sample-sources", "Sample source chart", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetChartSampleSources(ctx)
		}))

	var limit int
	labels := catalogCmd(rt, "label-frequency", "Label frequency chart", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetChartLabelFrequency(ctx, limit)
		})
	labels.Flags().IntVar(&limit, "limit", 0, "Number of labels (default 5)")
	cmd.AddCommand(labels)
	return cmd
}

func newERPCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "erp",
		Short: "ERP sales and stock lookups",
	}

	var skus []string
	var period string
	trends := catalogCmd(rt, "sales-trends", "Sales trends for SKUs", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetSalesTrends(ctx, medipoint.SKUList(skus), period)
		})
	trends.Flags().StringSliceVar(&skus, "skus", nil, "SKU codes (repeat or comma separate)")
	trends.Flags().StringVar(&period, "period", "", "Period (7d, 30d, 90d; default 7d)")
	_ = trends.MarkFlagRequired("skus")
	cmd.AddCommand(trends)

	var stockSKUs []string
	stock := catalogCmd(rt, "stock", "Stock levels for SKUs", cobra.NoArgs,
		func(ctx context.Context, api *medipoint.API, _ []string) (json.RawMessage, error) {
			return api.GetStockInfo(ctx, medipoint.SKUList(stockSKUs))
		})
	stock.Flags().StringSliceVar(&stockSKUs, "skus", nil, "SKU codes (repeat or comma separate)")
	_ = stock.MarkFlagRequired("skus")
	cmd.AddCommand(stock)

	return cmd
}
