package cli

import (
	"os"
	"strings"

	"ideas-cli/internal/render"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newBoardCmd(app *App) *cobra.Command {
	var width int
	var descriptions, stream bool

	cmd := &cobra.Command{
		Use:   "board [project]",
		Short: "Render a project as columns of buckets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, firstArg(args))
				if err != nil {
					return nil, err
				}
				theme, w := boardTheme(cmd)
				if width > 0 {
					w = width
				}
				opt := render.Options{
					Width:        w,
					Size:         c.Settings().UISize.SizeValue,
					Descriptions: descriptions,
				}
				var b strings.Builder
				if stream {
					if err := theme.Stream(cmd.Context(), &b, p, opt); err != nil {
						return nil, err
					}
				} else {
					board, err := theme.Board(cmd.Context(), p, opt)
					if err != nil {
						return nil, err
					}
					b.WriteString(board)
				}
				return result{value: p, text: b.String()}, nil
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Terminal width (default: detected or 120)")
	cmd.Flags().BoolVar(&descriptions, "descriptions", false, "Render idea descriptions")
	cmd.Flags().BoolVar(&stream, "stream", false, "Print bucket by bucket instead of side by side")
	return cmd
}

// boardTheme colours output only when it goes to the real stdout.
func boardTheme(cmd *cobra.Command) (*render.Theme, int) {
	if cmd.OutOrStdout() != os.Stdout {
		return render.PlainTheme(), 0
	}
	w := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if cols, _, err := term.GetSize(fd); err == nil {
			w = cols
		}
	}
	return render.StdoutTheme(), w
}
