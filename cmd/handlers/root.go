/*
Copyright © 2026 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsagent/internal/config"
	"newsagent/internal/fetch"
	"newsagent/internal/pipeline"
	"newsagent/internal/sources"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newsagent",
		Short: "newsagent aggregates RSS feeds into citation-backed news digests.",
		Long: `newsagent ingests RSS/Atom feeds from a configurable source registry,
collapses duplicate reporting, tags articles with topics, clusters similar
stories, and emits ranked digest cards where every claim carries a citation.

Run 'newsagent serve' to expose the digest API over HTTP, or
'newsagent digest' for a one-shot digest on the command line.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.newsagent.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewDigestCmd())
	rootCmd.AddCommand(NewSourcesCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// buildOrchestrator assembles the pipeline from configuration: registry,
// gatherer, and tuning knobs.
func buildOrchestrator(cfg *config.Config) (*pipeline.Orchestrator, error) {
	registry, err := sources.Load(cfg.Sources.RegistryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load source registry: %w", err)
	}

	gatherer := fetch.NewHTTPGatherer(cfg.FetchTimeout(), cfg.Fetch.UserAgent)

	return pipeline.NewOrchestrator(registry, gatherer, pipeline.Options{
		Concurrency: cfg.Fetch.Concurrency,
		Threshold:   cfg.Pipeline.SimilarityThreshold,
		MaxBullets:  cfg.Pipeline.MaxBulletsPerCard,
	}), nil
}
