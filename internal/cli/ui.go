package cli

import (
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

func newUICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Interface size settings",
	}
	cmd.AddCommand(newUISizeCmd(app, "larger", "Increase the interface size one step"))
	cmd.AddCommand(newUISizeCmd(app, "smaller", "Decrease the interface size one step"))
	cmd.AddCommand(newUISizeCmd(app, "show", "Show the interface size"))
	return cmd
}

func newUISizeCmd(app *App, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				s := &c.Settings().UISize
				switch name {
				case "larger":
					s.Larger()
					c.Changed()
				case "smaller":
					s.Smaller()
					c.Changed()
				}
				return textf(s, "size %d", s.SizeValue), nil
			})
		},
	}
}
