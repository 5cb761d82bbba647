package cli

import (
	"strconv"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExtCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ext",
		Aliases: []string{"extensions"},
		Short:   "Idea extension commands (checklists, image galleries)",
	}
	cmd.AddCommand(newExtAddCmd(app))
	cmd.AddCommand(newExtShowCmd(app))
	cmd.AddCommand(newExtRenameCmd(app))
	cmd.AddCommand(newExtRemoveCmd(app))
	cmd.AddCommand(newExtMoveCmd(app))
	cmd.AddCommand(newExtMinimizeCmd(app))
	return cmd
}

// parseExtensionType accepts the stored names plus a few shorthands.
func parseExtensionType(s string) (model.ExtensionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "checklist", "list", "todo":
		return model.ExtensionChecklist, nil
	case "imagecatalogue", "images", "image", "gallery":
		return model.ExtensionImageCatalogue, nil
	}
	return model.ParseExtensionType(s)
}

func newExtAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <idea> <checklist|gallery>",
		Short: "Attach an extension to an idea",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				idea, _, _, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				t, err := parseExtensionType(args[1])
				if err != nil {
					return nil, err
				}
				e := mutate.AddExtension(c, idea, t)
				if s := strings.TrimSpace(title); s != "" {
					e.Title = s
				}
				return extensionResult(e), nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (default: the type name)")
	return cmd
}

func newExtShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <extension>",
		Short: "Show an extension with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				e, _, err := findExtension(c, args[0])
				if err != nil {
					return nil, err
				}
				return extensionResult(e), nil
			})
		},
	}
	return cmd
}

func newExtRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <extension> <title>",
		Short: "Rename an extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				e, _, err := findExtension(c, args[0])
				if err != nil {
					return nil, err
				}
				e.Title = strings.TrimSpace(args[1])
				c.Changed()
				return extensionResult(e), nil
			})
		},
	}
	return cmd
}

func newExtRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <extension>",
		Short: "Remove an extension and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				e, idea, err := findExtension(c, args[0])
				if err != nil {
					return nil, err
				}
				if err := mutate.RemoveExtension(c, idea, e); err != nil {
					return nil, err
				}
				return textf(map[string]any{"deleted": e.ID}, "removed %s", e.Title), nil
			})
		},
	}
	return cmd
}

func newExtMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <extension> <position>",
		Short: "Move an extension within its idea",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				e, idea, err := findExtension(c, args[0])
				if err != nil {
					return nil, err
				}
				pos, err := parsePosition(args[1])
				if err != nil {
					return nil, err
				}
				mutate.MoveExtension(c, idea, e, pos)
				return extensionResult(e), nil
			})
		},
	}
	return cmd
}

func newExtMinimizeCmd(app *App) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "minimize <extension>",
		Short: "Collapse (or with --off expand) an extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				e, _, err := findExtension(c, args[0])
				if err != nil {
					return nil, err
				}
				e.Minimized = !off
				c.Changed()
				return extensionResult(e), nil
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Expand instead of collapse")
	return cmd
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errInvalidPosition(s)
	}
	return n, nil
}
