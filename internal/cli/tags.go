package cli

import (
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/store"
	"ideas-cli/internal/tags"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Tag registry commands",
	}
	cmd.AddCommand(newTagsCreateCmd(app))
	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsRenameCmd(app))
	cmd.AddCommand(newTagsDeleteCmd(app))
	cmd.AddCommand(newTagsAttachCmd(app))
	cmd.AddCommand(newTagsDetachCmd(app))
	return cmd
}

func colorFlag(cmd *cobra.Command) (int, error) {
	v, _ := cmd.Flags().GetString("color")
	if strings.TrimSpace(v) == "" {
		return 0, nil
	}
	return model.ParseColor(v)
}

func newTagsCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				color, err := colorFlag(cmd)
				if err != nil {
					return nil, err
				}
				return tagResult(tags.Create(c, c.Settings(), strings.TrimSpace(args[0]), color)), nil
			})
		},
	}

	cmd.Flags().String("color", "", "Colour (gray, red, orange, green, blue, purple, teal or 1-7)")
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags with the number of projects using them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				usage := map[uuid.UUID]int{}
				for _, p := range c.Projects() {
					for _, ref := range p.Tags {
						usage[ref.TagID]++
					}
				}
				return tagList(c.Tags(), usage), nil
			})
		},
	}
	return cmd
}

func newTagsRenameCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <tag>",
		Short: "Change the title or colour of a tag in every project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				t, err := findTag(c, args[0])
				if err != nil {
					return nil, err
				}
				color, err := colorFlag(cmd)
				if err != nil {
					return nil, err
				}
				tags.Rename(c, t, strings.TrimSpace(title), color)
				return tagResult(t), nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().String("color", "", "New colour")
	return cmd
}

func newTagsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <tag>",
		Short: "Delete a tag and detach it from every project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				t, err := findTag(c, args[0])
				if err != nil {
					return nil, err
				}
				n := tags.SafelyDelete(c, c.Projects(), c.Settings(), t)
				return textf(map[string]any{"deleted": t.ID, "detached": n}, "deleted %s (detached from %d projects)", t.Title, n), nil
			})
		},
	}
	return cmd
}

func newTagsAttachCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "attach <tag>",
		Short: "Tag a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, project)
				if err != nil {
					return nil, err
				}
				t, err := findTag(c, args[0])
				if err != nil {
					return nil, err
				}
				ref, err := tags.Attach(c, p, t)
				if err != nil {
					return nil, err
				}
				return textf(ref, "tagged %s with %s", p.Title, t.Title), nil
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (default: current)")
	return cmd
}

func newTagsDetachCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "detach <tag>",
		Short: "Remove a tag from a project (the tag stays in the registry)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, project)
				if err != nil {
					return nil, err
				}
				t, err := findTag(c, args[0])
				if err != nil {
					return nil, err
				}
				detached := tags.Detach(c, p, t)
				return textf(map[string]any{"detached": detached}, "detached %s from %s: %t", t.Title, p.Title, detached), nil
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (default: current)")
	return cmd
}
