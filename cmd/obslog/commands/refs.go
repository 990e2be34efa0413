package commands

import (
	"slices"

	"github.com/spf13/cobra"
	"go.trai.ch/obslog/internal/core/domain"
)

func (c *CLI) newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <kind> <id>",
		Short: "List the elements referencing an element",
		Long: "List the observations reaching an element, directly or through a composite\n" +
			"target or session, followed by the other elements holding it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			refs, err := c.app.Refs(r)
			if err != nil {
				return err
			}

			holders := slices.DeleteFunc(slices.Clone(refs.Dependents), func(d domain.Ref) bool {
				return slices.Contains(refs.Observations, d)
			})

			out := cmd.OutOrStdout()
			printRefs(out, "", refs.Observations)
			printRefs(out, "held by ", holders)
			return nil
		},
	}
}
