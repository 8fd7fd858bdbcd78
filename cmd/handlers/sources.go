package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"newsagent/internal/config"
	"newsagent/internal/fetch"
	"newsagent/internal/sources"
)

// NewSourcesCmd creates the sources command group for working with the feed
// registry.
func NewSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Inspect and validate the feed registry",
	}

	cmd.AddCommand(newSourcesListCmd())
	cmd.AddCommand(newSourcesValidateCmd())
	cmd.AddCommand(newSourcesDiscoverCmd())

	return cmd
}

func newSourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the registry grouped by region",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(registry.Regions) == 0 {
				fmt.Fprintln(out, "Registry is empty.")
				return nil
			}

			for _, rs := range registry.Regions {
				fmt.Fprintf(out, "%s\n", rs.Region)
				for _, pub := range rs.Publishers {
					fmt.Fprintf(out, "  %s (%s)\n", pub.Name, strings.Join(pub.AllowedDomains, ", "))
					for _, feed := range pub.Feeds {
						fmt.Fprintf(out, "    [%s] %s  %s\n", feed.Topic, feed.Name, feed.URL)
					}
				}
			}
			return nil
		},
	}
}

func newSourcesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Sanity-check the registry file",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			problems := registry.Validate()
			if len(problems) > 0 {
				return fmt.Errorf("registry problems:\n- %s", strings.Join(problems, "\n- "))
			}

			feeds := 0
			for _, rs := range registry.Regions {
				for _, pub := range rs.Publishers {
					feeds += len(pub.Feeds)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry OK: %d regions, %d feeds.\n", len(registry.Regions), feeds)
			return nil
		},
	}
}

func newSourcesDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <page-url>",
		Short: "Find feed URLs advertised by a publisher page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			gatherer := fetch.NewHTTPGatherer(cfg.FetchTimeout(), cfg.Fetch.UserAgent)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout())
			defer cancel()

			feeds, err := gatherer.DiscoverFeeds(ctx, args[0])
			if err != nil {
				return fmt.Errorf("feed discovery failed: %w", err)
			}

			if len(feeds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No feeds advertised on that page.")
				return nil
			}
			for _, f := range feeds {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func loadRegistry() (*sources.Registry, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := sources.Load(cfg.Sources.RegistryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load source registry: %w", err)
	}
	return registry, nil
}
