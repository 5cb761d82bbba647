package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newImagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Image gallery commands",
	}
	cmd.AddCommand(newImagesAddCmd(app))
	cmd.AddCommand(newImagesTitleCmd(app))
	cmd.AddCommand(newImagesMoveCmd(app))
	cmd.AddCommand(newImagesRemoveCmd(app))
	cmd.AddCommand(newImagesSaveCmd(app))
	return cmd
}

func imageResult(it *model.ImageItem) result {
	return textf(it, "%s  %d. %s (%s)", shortID(it.ID), it.Position, it.Title, humanize.Bytes(uint64(len(it.Image))))
}

func newImagesAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <gallery> <file>",
		Short: "Add an image file to a gallery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				g, err := findGallery(c, args[0])
				if err != nil {
					return nil, err
				}
				data, err := os.ReadFile(args[1])
				if err != nil {
					return nil, err
				}
				t := strings.TrimSpace(title)
				if t == "" {
					base := filepath.Base(args[1])
					t = strings.TrimSuffix(base, filepath.Ext(base))
				}
				return imageResult(mutate.AddImage(c, g, t, data)), nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (default: the file name)")
	return cmd
}

func newImagesTitleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "title <image> <title>",
		Short: "Change the title of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, _, err := findImage(c, args[0])
				if err != nil {
					return nil, err
				}
				it.Title = strings.TrimSpace(args[1])
				c.Changed()
				return imageResult(it), nil
			})
		},
	}
	return cmd
}

func newImagesMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <image> <position>",
		Short: "Move an image within its gallery or into another gallery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, from, err := findImage(c, args[0])
				if err != nil {
					return nil, err
				}
				pos, err := parsePosition(args[1])
				if err != nil {
					return nil, err
				}
				target := from
				if to != "" {
					if target, err = findGallery(c, to); err != nil {
						return nil, err
					}
				}
				return imageResult(mutate.MoveImage(c, from, target, it, pos)), nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target gallery extension (default: same gallery)")
	return cmd
}

func newImagesRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <image>",
		Short: "Remove an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, g, err := findImage(c, args[0])
				if err != nil {
					return nil, err
				}
				if err := mutate.RemoveImage(c, g, it); err != nil {
					return nil, err
				}
				return textf(map[string]any{"deleted": it.ID}, "removed %s", it.Title), nil
			})
		},
	}
	return cmd
}

func newImagesSaveCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "save <image>",
		Short: "Write an image to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, _, err := findImage(c, args[0])
				if err != nil {
					return nil, err
				}
				path := out
				if path == "" {
					path = it.Title
				}
				if path == "" {
					return nil, errors.New("image has no title; pass --out")
				}
				if err := store.WriteFileAtomic(path, it.Image); err != nil {
					return nil, err
				}
				return textf(map[string]any{"path": path, "bytes": len(it.Image)}, "wrote %s (%s)", path, humanize.Bytes(uint64(len(it.Image)))), nil
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default: the image title)")
	return cmd
}
