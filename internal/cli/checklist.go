package cli

import (
	"fmt"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"cl"},
		Short:   "Checklist item commands",
	}
	cmd.AddCommand(newChecklistAddCmd(app))
	cmd.AddCommand(newChecklistEditCmd(app))
	cmd.AddCommand(newChecklistCheckCmd(app))
	cmd.AddCommand(newChecklistMoveCmd(app))
	cmd.AddCommand(newChecklistRemoveCmd(app))
	return cmd
}

func itemResult(it *model.ChecklistItem) result {
	box := "[ ]"
	if it.Checked {
		box = "[x]"
	}
	return textf(it, "%s  %d. %s %s", shortID(it.ID), it.Position, box, strings.TrimSpace(it.Title))
}

func newChecklistAddCmd(app *App) *cobra.Command {
	var after string

	cmd := &cobra.Command{
		Use:   "add <checklist> <text>",
		Short: "Add an item to a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				cl, err := findChecklist(c, args[0])
				if err != nil {
					return nil, err
				}
				if after == "" {
					return itemResult(mutate.AddChecklistItem(c, cl, args[1])), nil
				}
				prev, owner, err := findChecklistItem(c, after)
				if err != nil {
					return nil, err
				}
				if owner != cl {
					return nil, fmt.Errorf("item %s is not in this checklist", after)
				}
				it := mutate.SubmitChecklistItem(c, cl, prev)
				mutate.EditChecklistItem(c, cl, it, args[1])
				return itemResult(it), nil
			})
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Insert right below this item (inherits its checked state)")
	return cmd
}

func newChecklistEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <item> <text>",
		Short: "Change the text of an item (empty text removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, cl, err := findChecklistItem(c, args[0])
				if err != nil {
					return nil, err
				}
				if _, removed := mutate.EditChecklistItem(c, cl, it, args[1]); removed {
					return textf(map[string]any{"deleted": it.ID}, "removed item"), nil
				}
				return itemResult(it), nil
			})
		},
	}
	return cmd
}

func newChecklistCheckCmd(app *App) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "check <item>",
		Short: "Check (or with --off uncheck) an item; checked items move to the end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, cl, err := findChecklistItem(c, args[0])
				if err != nil {
					return nil, err
				}
				mutate.SetChecked(c, cl, it, !off)
				return itemResult(it), nil
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Uncheck instead")
	return cmd
}

func newChecklistMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <item> <position>",
		Short: "Move an item within its checklist or into another checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, from, err := findChecklistItem(c, args[0])
				if err != nil {
					return nil, err
				}
				pos, err := parsePosition(args[1])
				if err != nil {
					return nil, err
				}
				target := from
				if to != "" {
					if target, err = findChecklist(c, to); err != nil {
						return nil, err
					}
				}
				return itemResult(mutate.MoveChecklistItem(c, from, target, it, pos)), nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target checklist extension (default: same checklist)")
	return cmd
}

func newChecklistRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <item>",
		Short: "Remove an item (an emptied checklist gets a blank item)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				it, cl, err := findChecklistItem(c, args[0])
				if err != nil {
					return nil, err
				}
				mutate.RemoveChecklistItem(c, cl, it)
				return textf(map[string]any{"deleted": it.ID}, "removed %s", strings.TrimSpace(it.Title)), nil
			})
		},
	}
	return cmd
}
