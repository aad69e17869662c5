package cli

import (
	"github.com/spf13/cobra"
)

func newHandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hand",
		Short: "Hand management commands",
	}

	cmd.AddCommand(newHandDealCmd())
	cmd.AddCommand(newHandShowCmd())

	return cmd
}

func newHandDealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deal",
		Short: "Deal a fresh hand of cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Hand

			if err := client.Post("/api/v1/hand", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHandShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Hand

			if err := client.Get("/api/v1/hand", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
