package cli

import (
	"io"

	"ideas-cli/internal/model"
	"ideas-cli/internal/store"
	"ideas-cli/internal/transfer"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a project document as a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				n := app.notifier(cmd)
				var (
					p   *model.Project
					err error
				)
				if args[0] == "-" {
					b, rerr := io.ReadAll(cmd.InOrStdin())
					if rerr != nil {
						return nil, rerr
					}
					p, err = transfer.Import(c, b, n)
				} else {
					p, err = transfer.ImportFile(c, args[0], n)
				}
				if err != nil {
					return nil, err
				}
				if use {
					c.Settings().LastOpenedProject = p.ID
					c.Changed()
				}
				return textf(newProjectRow(p, c.Settings().LastOpenedProject), "imported %s  %s (%s)", shortID(p.ID), p.Title, p.Summary()), nil
			})
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Make the imported project current")
	return cmd
}
