package cli

import (
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/render"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

const defaultProjectTitle = "new Project"

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsRenameCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsUseCmd(app))
	cmd.AddCommand(newProjectsSettingsCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var use bool
	var preset bool

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a project with one empty bucket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p := model.NewProject(defaultProjectTitle)
				if preset {
					p = model.PresetProject()
				}
				if title := strings.TrimSpace(firstArg(args)); title != "" {
					p.Title = title
				}
				if err := c.Insert(p); err != nil {
					return nil, err
				}
				if use || len(c.Projects()) == 1 {
					c.Settings().LastOpenedProject = p.ID
				}
				return textf(p, "%s  %s", p.ID, p.Title), nil
			})
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Make the new project current")
	cmd.Flags().BoolVar(&preset, "preset", false, "Start from the sample project (two buckets, four ideas)")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				return projectList(c.Projects(), c.Settings().LastOpenedProject), nil
			})
		},
	}
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [project]",
		Short: "Show a project with all buckets, ideas and extensions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, firstArg(args))
				if err != nil {
					return nil, err
				}
				var b strings.Builder
				if err := render.PlainTheme().Stream(cmd.Context(), &b, p, render.Options{}); err != nil {
					return nil, err
				}
				return result{value: p, text: b.String()}, nil
			})
		},
	}
	return cmd
}

func newProjectsRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <project> <title>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := findProject(c, args[0])
				if err != nil {
					return nil, err
				}
				p.Title = strings.TrimSpace(args[1])
				c.Changed()
				return textf(p, "%s  %s", shortID(p.ID), p.Title), nil
			})
		},
	}
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := findProject(c, args[0])
				if err != nil {
					return nil, err
				}
				if !yes {
					return nil, errNeedsConfirm
				}
				c.Delete(p)
				return textf(map[string]any{"deleted": p.ID}, "deleted %s", p.Title), nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func newProjectsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <project>",
		Short: "Make a project current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := findProject(c, args[0])
				if err != nil {
					return nil, err
				}
				c.Settings().LastOpenedProject = p.ID
				c.Changed()
				return textf(map[string]any{"current": p.ID}, "now using %s", p.Title), nil
			})
		},
	}
	return cmd
}

func newProjectsSettingsCmd(app *App) *cobra.Command {
	var project string
	var confirmDelete, scrollView, checkOffButton bool
	var bucketWidth int

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change project settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, project)
				if err != nil {
					return nil, err
				}
				s := p.Settings
				changed := false
				if cmd.Flags().Changed("confirm-delete") {
					s.IdeaDeletionRequiresConfirmation = confirmDelete
					changed = true
				}
				if cmd.Flags().Changed("scroll-view") {
					s.UseScrollViewForBuckets = scrollView
					changed = true
				}
				if cmd.Flags().Changed("bucket-width") {
					s.ScrollViewBucketWidth = max(bucketWidth, 100)
					changed = true
				}
				if cmd.Flags().Changed("checkoff-button") {
					s.UseCheckOffIdeaButton = checkOffButton
					changed = true
				}
				if changed {
					c.Changed()
				}
				return textf(s, "confirm-delete=%t scroll-view=%t bucket-width=%d checkoff-button=%t",
					s.IdeaDeletionRequiresConfirmation, s.UseScrollViewForBuckets, s.ScrollViewBucketWidth, s.UseCheckOffIdeaButton), nil
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (default: current)")
	cmd.Flags().BoolVar(&confirmDelete, "confirm-delete", true, "Require --yes when removing ideas")
	cmd.Flags().BoolVar(&scrollView, "scroll-view", false, "Use fixed-width bucket columns")
	cmd.Flags().IntVar(&bucketWidth, "bucket-width", model.DefaultBucketWidth, "Bucket column width (pixels; 10 per terminal column)")
	cmd.Flags().BoolVar(&checkOffButton, "checkoff-button", false, "Offer checking off ideas")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
