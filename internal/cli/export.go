package cli

import (
	"ideas-cli/internal/store"
	"ideas-cli/internal/transfer"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [project]",
		Short: "Write a project as a portable JSON document",
		Long:  "Write a project as a portable JSON document. --out - writes the document to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, firstArg(args))
				if err != nil {
					return nil, err
				}
				if out == "-" {
					b, err := transfer.Encode(p)
					if err != nil {
						return nil, err
					}
					_, err = cmd.OutOrStdout().Write(append(b, '\n'))
					return nil, err
				}
				path := out
				if path == "" {
					path = transfer.FileName(p)
				}
				written, err := transfer.ExportFile(p, path)
				if err != nil {
					return nil, err
				}
				return textf(map[string]any{"path": written, "project": p.ID}, "exported %s to %s", p.Title, written), nil
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default: <title>.json in the working directory)")
	return cmd
}
