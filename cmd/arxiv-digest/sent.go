// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/sentstore"
)

var sentCmd = &cobra.Command{
	Use:   "sent",
	Short: "Inspect or edit the sent-id store",
	Long: `Sent manages the store of identifiers already included in a mailed digest.
Use subcommands to list the identifiers or forget some so they can be sent
again.`,
}

// --- list subcommand ---

var sentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List identifiers already sent",
	RunE:  runSentList,
}

func runSentList(cmd *cobra.Command, args []string) error {
	store, err := openSentStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sent, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range sent.Sorted() {
		fmt.Fprintln(out, id)
	}
	fmt.Fprintf(out, "\n%d identifiers\n", sent.Len())
	return nil
}

// --- forget subcommand ---

var sentForgetCmd = &cobra.Command{
	Use:   "forget [identifiers...]",
	Short: "Remove identifiers so they can be sent again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSentForget,
}

func runSentForget(cmd *cobra.Command, args []string) error {
	store, err := openSentStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for _, id := range args {
		removed, err := store.Forget(cmd.Context(), id)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(out, "forgot %s\n", id)
		} else {
			fmt.Fprintf(out, "not found %s\n", id)
		}
	}
	return nil
}

// --- shared helpers ---

func openSentStore(cmd *cobra.Command) (sentstore.Store, error) {
	for flag, key := range map[string]string{"store": "store.backend", "store-path": "store.path"} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(viper.GetViper(), loadedSecrets)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	sentCmd.PersistentFlags().String("store", "", "sent-id store backend: file or sqlite")
	sentCmd.PersistentFlags().String("store-path", "", "sent-id store location")

	sentCmd.AddCommand(sentListCmd)
	sentCmd.AddCommand(sentForgetCmd)

	rootCmd.AddCommand(sentCmd)
}
