package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <kind> <id>",
		Short: "Export an element with its dependents as a standalone document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			r, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				return c.app.Export(cmd.Context(), r, cmd.OutOrStdout())
			}

			f, err := os.Create(output) //nolint:gosec // path is provided by user
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create export file"), "path", output)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = zerr.With(zerr.Wrap(cerr, "failed to close export file"), "path", output)
				}
			}()
			return c.app.Export(cmd.Context(), r, f)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the document to this file instead of stdout")
	return cmd
}
