// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/arxiv"
	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/sentstore"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// flagKeys maps digest flags to their configuration keys.
var flagKeys = map[string]string{
	"categories":   "categories",
	"keywords":     "keywords",
	"recipient":    "recipient",
	"recency-days": "recency_days",
	"store":        "store.backend",
	"store-path":   "store.path",
}

// addDigestFlags registers the flags shared by run and preview.
func addDigestFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("categories", nil, "arXiv categories to query (comma-separated, e.g. cs.LG,cs.CL)")
	cmd.Flags().StringSlice("keywords", nil, "keywords to match (comma-separated, case-insensitive)")
	cmd.Flags().String("recipient", "", "digest recipient email address")
	cmd.Flags().Int("recency-days", 0, "recency window in days (default 8)")
	cmd.Flags().String("store", "", "sent-id store backend: file or sqlite")
	cmd.Flags().String("store-path", "", "sent-id store location")
}

// loadConfig binds cmd's flags to their keys and assembles the DigestConfig.
// Binding happens per invocation because run and preview share keys.
func loadConfig(cmd *cobra.Command, sending bool) (types.DigestConfig, error) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return types.DigestConfig{}, err
			}
		}
	}

	cfg, err := config.Load(viper.GetViper(), loadedSecrets)
	if err != nil {
		return cfg, err
	}
	return cfg, config.Validate(cfg, sending)
}

func newListingClient(cfg types.DigestConfig) *arxiv.Client {
	return arxiv.NewClient(nil, cfg.Listing, logger)
}

func openStore(cfg types.DigestConfig) (sentstore.Store, error) {
	return sentstore.Open(cfg.Store)
}
