package cli

import (
	"fmt"
	"strings"

	"ideas-cli/internal/ordered"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

type doctorResult struct {
	// Repaired lists what opening the store found and fixed.
	Repaired store.DoctorReport `json:"repaired"`
	// Remaining is a fresh check after the repairs.
	Remaining store.DoctorReport `json:"remaining"`
}

func (r doctorResult) Text() string {
	var b strings.Builder
	write := func(label string, rep store.DoctorReport) {
		if len(rep.Issues) == 0 {
			fmt.Fprintf(&b, "%s: none\n", label)
			return
		}
		fmt.Fprintf(&b, "%s:\n", label)
		for _, is := range rep.Issues {
			fmt.Fprintf(&b, "  [%s] %s %s: %s", is.Level, is.Code, is.EntityKind, is.Message)
			if is.Title != "" {
				fmt.Fprintf(&b, " (%s)", is.Title)
			}
			b.WriteString("\n")
		}
	}
	write("repaired on open", r.Repaired)
	write("remaining", r.Remaining)
	return b.String()
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check (and repair) the integrity of the stored graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			var res doctorResult
			err := app.run(cmd, func(c *store.Context) (any, error) {
				res = doctorResult{
					Repaired:  c.Report(),
					Remaining: store.Doctor(ordered.Nop, c.Projects(), c.Settings().TagCollection, false),
				}
				return res, nil
			})
			if err != nil {
				return err
			}
			if fail && res.Remaining.HasErrors() {
				return writeErr(cmd, errDoctorIssues)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit non-zero when unrepaired errors remain")
	return cmd
}
