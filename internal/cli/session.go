package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Game session commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionAttackCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var cards string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cardIDs, err := parseCardIDs(cards)
			if err != nil {
				return err
			}

			req := map[string]any{"card_ids": cardIDs}
			var result Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&cards, "cards", "", "Comma-separated card ids to commit (required)")
	_ = cmd.MarkFlagRequired("cards")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get session details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	var cards string

	cmd := &cobra.Command{
		Use:   "join <id>",
		Short: "Join a session as the opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardIDs, err := parseCardIDs(cards)
			if err != nil {
				return err
			}

			req := map[string]any{"card_ids": cardIDs}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&cards, "cards", "", "Comma-separated card ids to commit (required)")
	_ = cmd.MarkFlagRequired("cards")

	return cmd
}

func newSessionAttackCmd() *cobra.Command {
	var cardID, batteries, turn int

	cmd := &cobra.Command{
		Use:   "attack <id>",
		Short: "Play a card against the opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{
				"card_id":   cardID,
				"batteries": batteries,
				"turn":      turn,
			}
			var result Attack

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/attacks", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&cardID, "card", 0, "Card id to play (required)")
	cmd.Flags().IntVar(&batteries, "batteries", 0, "Batteries to commit")
	cmd.Flags().IntVar(&turn, "turn", 0, "Turn index the play targets")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

// parseCardIDs parses a comma-separated list of card ids
func parseCardIDs(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("--cards is required")
	}

	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
