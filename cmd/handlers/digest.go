package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"newsagent/internal/config"
	"newsagent/internal/core"
)

// NewDigestCmd creates the digest command, the CLI twin of POST /digest.
func NewDigestCmd() *cobra.Command {
	var (
		topicsFlag       []string
		regionsFlag      []string
		rangeFlag        string
		publishersFlag   []string
		maxCards         int
		maxCardsPerTopic int
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Build one digest and print it as JSON",
		Long: `Build a digest from the configured feed registry and print the
response JSON to stdout.

Examples:
  # Tech and finance from global sources, last 24 hours
  newsagent digest --topics tech,finance --regions global

  # Week of health news from Canadian publishers
  newsagent digest --topics health --regions canada --range 7d

  # Limit output
  newsagent digest --topics daily --regions global --max-cards 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, topicsFlag, regionsFlag, rangeFlag, publishersFlag, maxCards, maxCardsPerTopic)
		},
	}

	cmd.Flags().StringSliceVar(&topicsFlag, "topics", nil, "topics to include (tech, finance, health, learning, daily)")
	cmd.Flags().StringSliceVar(&regionsFlag, "regions", nil, "regions to include (canada, usa, uk, china, global)")
	cmd.Flags().StringVar(&rangeFlag, "range", "24h", "lookback window: 24h, 3d, or 7d")
	cmd.Flags().StringSliceVar(&publishersFlag, "publishers", nil, "optional publisher allowlist")
	cmd.Flags().IntVar(&maxCards, "max-cards", core.DefaultMaxCards, "maximum cards in the digest")
	cmd.Flags().IntVar(&maxCardsPerTopic, "max-cards-per-topic", core.DefaultMaxCardsPerTopic, "maximum cards per topic")

	return cmd
}

func runDigest(cmd *cobra.Command, topicsFlag, regionsFlag []string, rangeFlag string, publishersFlag []string, maxCards, maxCardsPerTopic int) error {
	req := core.DigestRequest{
		Range:            core.TimeRange(rangeFlag),
		Publishers:       publishersFlag,
		MaxCards:         maxCards,
		MaxCardsPerTopic: maxCardsPerTopic,
	}
	for _, t := range topicsFlag {
		req.Topics = append(req.Topics, core.Topic(strings.ToLower(strings.TrimSpace(t))))
	}
	for _, r := range regionsFlag {
		req.Regions = append(req.Regions, core.Region(strings.ToLower(strings.TrimSpace(r))))
	}

	req.ApplyDefaults()
	if problems := req.Validate(); len(problems) > 0 {
		return fmt.Errorf("invalid digest request:\n- %s", strings.Join(problems, "\n- "))
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	orchestrator, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	resp := orchestrator.BuildDigest(cmd.Context(), req)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
