package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrStillReferenced is returned when an element cannot be removed because
// other elements depend on it.
var ErrStillReferenced = zerr.New("element is still referenced")

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <kind> <id>",
		Short: "Remove an element that nothing references",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			deps, err := c.app.Remove(r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(deps) > 0 {
				_, _ = fmt.Fprintf(out, "%s is referenced by:\n", r)
				printRefs(out, "  ", deps)
				return domain.Annotate(ErrStillReferenced, "element", r.String())
			}
			if err := c.app.Save(cmd.Context(), ""); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "removed %s\n", r)
			return nil
		},
	}
}
