package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show one element and what it references",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			el, err := c.app.Get(r)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(el)
			if err != nil {
				return zerr.Wrap(err, "failed to render element")
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n", r, el.DisplayName())
			_, _ = out.Write(data)
			printRefs(out, "-> ", domain.Links(el))
			return nil
		},
	}
}
