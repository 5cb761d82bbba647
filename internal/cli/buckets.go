package cli

import (
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBucketsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buckets",
		Aliases: []string{"bucket"},
		Short:   "Bucket commands",
	}
	cmd.PersistentFlags().String("project", "", "Project (default: current)")
	cmd.AddCommand(newBucketsListCmd(app))
	cmd.AddCommand(newBucketsAddCmd(app))
	cmd.AddCommand(newBucketsRenameCmd(app))
	cmd.AddCommand(newBucketsColorCmd(app))
	cmd.AddCommand(newBucketsMoveCmd(app))
	cmd.AddCommand(newBucketsRemoveCmd(app))
	return cmd
}

func projectFlag(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("project")
	return strings.TrimSpace(v)
}

func newBucketsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the buckets of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, projectFlag(cmd))
				if err != nil {
					return nil, err
				}
				var b strings.Builder
				buckets := make([]*model.Bucket, 0, len(p.Buckets))
				for i := 1; i <= len(p.Buckets); i++ {
					bk := p.BucketAt(i)
					if bk == nil {
						continue
					}
					buckets = append(buckets, bk)
					b.WriteString(bucketResult(bk).text)
					b.WriteString("\n")
				}
				return result{value: buckets, text: b.String()}, nil
			})
		},
	}
	return cmd
}

func newBucketsAddCmd(app *App) *cobra.Command {
	var pos int

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a bucket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, projectFlag(cmd))
				if err != nil {
					return nil, err
				}
				return bucketResult(mutate.AddBucket(c, p, firstArg(args), pos)), nil
			})
		},
	}

	cmd.Flags().IntVar(&pos, "pos", 0, "Insert at this position (default: last)")
	return cmd
}

func newBucketsRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <bucket> <title>",
		Short: "Rename a bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				b, _, err := resolveBucket(c, projectFlag(cmd), args[0])
				if err != nil {
					return nil, err
				}
				b.Title = strings.TrimSpace(args[1])
				c.Changed()
				return bucketResult(b), nil
			})
		},
	}
	return cmd
}

func newBucketsColorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color <bucket> <color>",
		Short: "Set the colour of a bucket (gray, red, orange, green, blue, purple, teal or 1-7)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				b, _, err := resolveBucket(c, projectFlag(cmd), args[0])
				if err != nil {
					return nil, err
				}
				color, err := model.ParseColor(args[1])
				if err != nil {
					return nil, err
				}
				b.ColorIdentifier = color
				c.Changed()
				return bucketResult(b), nil
			})
		},
	}
	return cmd
}

func newBucketsMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <bucket> <left|right>",
		Short: "Swap a bucket with its neighbour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				b, p, err := resolveBucket(c, projectFlag(cmd), args[0])
				if err != nil {
					return nil, err
				}
				d, err := mutate.ParseDirection(args[1])
				if err != nil {
					return nil, err
				}
				moved := mutate.MoveBucket(c, p, b.Position, d)
				return result{
					value: map[string]any{"bucket": b, "moved": moved},
					text:  bucketResult(b).text + movedSuffix(moved),
				}, nil
			})
		},
	}
	return cmd
}

func movedSuffix(moved bool) string {
	if moved {
		return ""
	}
	return " (already at the edge)"
}

func newBucketsRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <bucket>",
		Short: "Remove a bucket with all of its ideas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				b, p, err := resolveBucket(c, projectFlag(cmd), args[0])
				if err != nil {
					return nil, err
				}
				if len(b.Ideas) > 0 && p.Settings.IdeaDeletionRequiresConfirmation && !yes {
					return nil, errNeedsConfirm
				}
				if err := mutate.RemoveBucket(c, p, b); err != nil {
					return nil, err
				}
				return textf(map[string]any{"deleted": b.ID, "ideas": len(b.Ideas)},
					"removed %s (%d ideas)", b.Title, len(b.Ideas)), nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removing a bucket that still holds ideas")
	return cmd
}
