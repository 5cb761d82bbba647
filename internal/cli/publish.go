package cli

import (
	"strings"

	"ideas-cli/internal/publish"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var to string
	var html, embedImages, includeMinimized, overwrite bool

	cmd := &cobra.Command{
		Use:   "publish [project]",
		Short: "Render a project to Markdown (and optionally HTML) files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, firstArg(args))
				if err != nil {
					return nil, err
				}
				res, err := publish.WriteProject(p, to, publish.WriteOptions{
					RenderOptions: publish.RenderOptions{
						EmbedImages:      embedImages,
						IncludeMinimized: includeMinimized,
					},
					HTML:      html,
					Overwrite: overwrite,
				})
				if err != nil {
					return nil, err
				}
				return textf(res, "wrote %s", strings.Join(res.Written, ", ")), nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", ".", "Output directory")
	cmd.Flags().BoolVar(&html, "html", false, "Also write an HTML page")
	cmd.Flags().BoolVar(&embedImages, "embed-images", false, "Inline images as data URIs")
	cmd.Flags().BoolVar(&includeMinimized, "include-minimized", true, "Render the extensions of minimized ideas")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	return cmd
}
