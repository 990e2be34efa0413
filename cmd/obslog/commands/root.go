// Package commands implements the CLI commands for obslog.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/obslog/internal/app"
	"go.trai.ch/obslog/internal/build"
	"go.trai.ch/obslog/internal/core/domain"
)

// CLI represents the command line interface for obslog.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	file    string
}

// Application represents the application logic interface.
type Application interface {
	Resolve(path string) (string, error)
	Open(ctx context.Context, path string) error
	OpenOrCreate(ctx context.Context, path string) error
	Save(ctx context.Context, path string) error
	Validate(ctx context.Context, path string) error
	Export(ctx context.Context, r domain.Ref, w io.Writer) error
	Get(r domain.Ref) (domain.Element, error)
	List(k domain.Kind) []domain.Element
	Refs(r domain.Ref) (app.References, error)
	Remove(r domain.Ref) ([]domain.Ref, error)
	AddBatch(path string) ([]domain.Ref, error)
	UpdateBatch(path string) ([]domain.Ref, error)
	Recent() ([]string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "obslog",
		Short:         "Maintain astronomical observation logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.file, "file", "d", "", "Observation log to operate on (defaults to the configured document)")

	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newRefsCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newRecentCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// open loads the document selected with --file or the configured default.
func (c *CLI) open(ctx context.Context) error {
	path, err := c.app.Resolve(c.file)
	if err != nil {
		return err
	}
	return c.app.Open(ctx, path)
}

// parseRef builds a reference from kind and id arguments.
func parseRef(kind, id string) (domain.Ref, error) {
	k, err := domain.ParseKind(kind)
	if err != nil {
		return domain.Ref{}, err
	}
	return domain.Ref{Kind: k, ID: domain.ID(id)}, nil
}

func printRefs(w io.Writer, prefix string, refs []domain.Ref) {
	for _, r := range refs {
		_, _ = fmt.Fprintf(w, "%s%s\n", prefix, r)
	}
}
