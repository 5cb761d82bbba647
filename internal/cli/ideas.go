package cli

import (
	"fmt"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/ordered"
	"ideas-cli/internal/render"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

func newIdeasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ideas",
		Aliases: []string{"idea"},
		Short:   "Idea commands",
	}
	cmd.PersistentFlags().String("project", "", "Project (default: current)")
	cmd.AddCommand(newIdeasListCmd(app))
	cmd.AddCommand(newIdeasShowCmd(app))
	cmd.AddCommand(newIdeasAddCmd(app))
	cmd.AddCommand(newIdeasEditCmd(app))
	cmd.AddCommand(newIdeasMoveCmd(app))
	cmd.AddCommand(newIdeasCheckOffCmd(app))
	cmd.AddCommand(newIdeasCopyCmd(app))
	cmd.AddCommand(newIdeasRemoveCmd(app))
	cmd.AddCommand(newIdeasMinimizeCmd(app))
	return cmd
}

func newIdeasListCmd(app *App) *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas by bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, projectFlag(cmd))
				if err != nil {
					return nil, err
				}
				buckets := ordered.Sorted(p.Buckets)
				if bucket != "" {
					b, err := bucketIn(c, p, bucket)
					if err != nil {
						return nil, err
					}
					buckets = []*model.Bucket{b}
				}
				ideas := []*model.Idea{}
				var out strings.Builder
				for _, b := range buckets {
					fmt.Fprintf(&out, "%d. %s\n", b.Position, b.Title)
					for _, idea := range ordered.Sorted(b.Ideas) {
						ideas = append(ideas, idea)
						mark := ""
						if idea.Minimized {
							mark = " (minimized)"
						}
						fmt.Fprintf(&out, "  %s  %d. %s%s\n", shortID(idea.ID), idea.Position, idea.Title, mark)
					}
				}
				return result{value: ideas, text: out.String()}, nil
			})
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Only this bucket (position, id or title)")
	return cmd
}

func newIdeasShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <idea>",
		Short: "Show an idea with its extensions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				idea, b, _, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				var out strings.Builder
				out.WriteString(ideaResult(idea, b).text)
				if d := strings.TrimSpace(idea.Desc); d != "" {
					out.WriteString("\n\n")
					out.WriteString(d)
				}
				for _, e := range ordered.Sorted(idea.Extensions) {
					out.WriteString("\n\n")
					out.WriteString(render.ExtensionSummary(e))
					out.WriteString("\n")
					out.WriteString(extensionResult(e).text)
				}
				return result{value: idea, text: out.String()}, nil
			})
		},
	}
	return cmd
}

func newIdeasAddCmd(app *App) *cobra.Command {
	var bucket, desc string
	var pos int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an idea to a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				b, _, err := resolveBucket(c, projectFlag(cmd), bucket)
				if err != nil {
					return nil, err
				}
				idea := mutate.AddIdea(c, b, strings.TrimSpace(args[0]), desc, pos)
				return ideaResult(idea, b), nil
			})
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (position, id or title; default: first)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description (markdown)")
	cmd.Flags().IntVar(&pos, "pos", 0, "Insert at this position (default: last)")
	return cmd
}

func newIdeasEditCmd(app *App) *cobra.Command {
	var title, desc string

	cmd := &cobra.Command{
		Use:   "edit <idea>",
		Short: "Change the title or description of an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				idea, b, _, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				if cmd.Flags().Changed("title") {
					idea.Title = strings.TrimSpace(title)
				}
				if cmd.Flags().Changed("desc") {
					idea.Desc = desc
				}
				c.Changed()
				return ideaResult(idea, b), nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "desc", "", "New description (markdown)")
	return cmd
}

func newIdeasMoveCmd(app *App) *cobra.Command {
	var to string
	var pos int

	cmd := &cobra.Command{
		Use:   "move <idea>",
		Short: "Move an idea within its bucket or into another bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				idea, from, p, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				target := from
				if strings.TrimSpace(to) != "" {
					if target, err = bucketIn(c, p, to); err != nil {
						return nil, err
					}
				}
				slot := pos
				if slot <= 0 {
					slot = len(target.Ideas) + 1
				}
				mutate.MoveIdea(c, p, idea, target, slot)
				return ideaResult(idea, target), nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target bucket (position, id or title; default: same bucket)")
	cmd.Flags().IntVar(&pos, "pos", 0, "Target position (default: last)")
	return cmd
}

func newIdeasCheckOffCmd(app *App) *cobra.Command {
	var all string

	cmd := &cobra.Command{
		Use:   "checkoff [idea]",
		Short: "Minimize ideas and move them to the end of the last bucket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				if all != "" {
					b, p, err := resolveBucket(c, projectFlag(cmd), all)
					if err != nil {
						return nil, err
					}
					n := mutate.CheckOffAll(c, p, b)
					return textf(map[string]any{"checkedOff": n}, "checked off %d ideas from %s", n, b.Title), nil
				}
				if len(args) == 0 {
					return nil, errMissingIdea
				}
				idea, _, p, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				mutate.CheckOffIdea(c, p, idea)
				return ideaResult(idea, p.OwnerOf(idea)), nil
			})
		},
	}

	cmd.Flags().StringVar(&all, "all", "", "Check off every idea of this bucket")
	return cmd
}

func newIdeasCopyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <idea>",
		Short: "Duplicate an idea with its extensions right below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				idea, b, _, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				return ideaResult(mutate.DuplicateIdea(c, b, idea), b), nil
			})
		},
	}
	return cmd
}

func newIdeasRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <idea>",
		Short: "Remove an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				idea, _, p, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				if p.Settings.IdeaDeletionRequiresConfirmation && !yes {
					return nil, errNeedsConfirm
				}
				if err := mutate.RemoveIdea(c, p, idea); err != nil {
					return nil, err
				}
				return textf(map[string]any{"deleted": idea.ID}, "removed %s", idea.Title), nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the removal")
	return cmd
}

func newIdeasMinimizeCmd(app *App) *cobra.Command {
	var all string
	var off bool

	cmd := &cobra.Command{
		Use:   "minimize [idea]",
		Short: "Collapse (or with --off expand) ideas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				if all != "" {
					b, _, err := resolveBucket(c, projectFlag(cmd), all)
					if err != nil {
						return nil, err
					}
					mutate.SetMinimizedAll(c, b, !off)
					return bucketResult(b), nil
				}
				if len(args) == 0 {
					return nil, errMissingIdea
				}
				idea, b, _, err := findIdea(c, args[0])
				if err != nil {
					return nil, err
				}
				idea.Minimized = !off
				c.Changed()
				return ideaResult(idea, b), nil
			})
		},
	}

	cmd.Flags().StringVar(&all, "all", "", "Apply to every idea of this bucket")
	cmd.Flags().BoolVar(&off, "off", false, "Expand instead of collapse")
	return cmd
}
