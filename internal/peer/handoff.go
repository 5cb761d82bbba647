package peer

import (
	"fmt"

	"ideas-cli/internal/mainloop"
	"ideas-cli/internal/model"
	"ideas-cli/internal/notify"
	"ideas-cli/internal/store"
	"ideas-cli/internal/transfer"
)

// ImportInto returns an OnReceive handler that imports each document into c on
// loop. The result is reported through n and passed to done, which only ever runs
// on loop. A document arriving after loop stopped is reported and dropped.
func ImportInto(loop *mainloop.Loop, c *store.Context, n notify.Notifier, done func(Transfer, *model.Project, error)) func(Transfer) {
	n = notify.OrDiscard(n)
	return func(t Transfer) {
		posted := loop.Post(func() {
			p, err := transfer.Import(c, t.Data, n)
			if err != nil {
				n.Report("Import failed: "+err.Error(), notify.Destructive, notify.DefaultDuration)
			} else {
				n.Report(fmt.Sprintf("Received \"%s\" from \"%s\"", p.Title, t.From), notify.Standard, notify.DefaultDuration)
			}
			if done != nil {
				done(t, p, err)
			}
		})
		if !posted {
			n.Report("Import failed: "+mainloop.ErrStopped.Error(), notify.Destructive, notify.DefaultDuration)
		}
	}
}
