package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/obslog/internal/core/domain"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add -f <batch.yaml>",
		Short: "Add the elements of a YAML batch",
		Long: "Add the elements of a YAML batch in file order. Elements without an id\n" +
			"are given a new one. The document is created when it does not exist yet.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batch, _ := cmd.Flags().GetString("from")
			return c.applyBatch(cmd, batch, "added", func(ctx context.Context, path string) error {
				return c.app.OpenOrCreate(ctx, path)
			}, c.app.AddBatch)
		},
	}
	cmd.Flags().StringP("from", "f", "", "YAML batch of elements")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update -f <batch.yaml>",
		Short: "Replace elements with the versions in a YAML batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batch, _ := cmd.Flags().GetString("from")
			return c.applyBatch(cmd, batch, "updated", c.app.Open, c.app.UpdateBatch)
		},
	}
	cmd.Flags().StringP("from", "f", "", "YAML batch of elements")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func (c *CLI) applyBatch(
	cmd *cobra.Command,
	batch, verb string,
	open func(context.Context, string) error,
	apply func(string) ([]domain.Ref, error),
) error {
	path, err := c.app.Resolve(c.file)
	if err != nil {
		return err
	}
	if err := open(cmd.Context(), path); err != nil {
		return err
	}
	refs, err := apply(batch)
	if err != nil {
		return err
	}
	if err := c.app.Save(cmd.Context(), ""); err != nil {
		return err
	}
	printRefs(cmd.OutOrStdout(), verb+" ", refs)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
	return nil
}
