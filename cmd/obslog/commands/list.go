package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/obslog/internal/core/domain"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List the elements of one kind",
		Long: "List the elements of one kind in display order.\n" +
			"Kinds: targets, sites, observers, scopes, eyepieces, filters, imagers, lenses, sessions, observations.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, el := range c.app.List(k) {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", el.Ref().ID, el.DisplayName())
			}
			return nil
		},
	}
}
