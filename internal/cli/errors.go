package cli

import (
	"errors"
	"fmt"

	"ideas-cli/internal/model"
)

var (
	errNoProject       = errors.New("no current project; run `ideas projects use <project>` or pass --project")
	errNeedsConfirm    = errors.New("project requires confirmation for deletions (pass --yes)")
	errDoctorIssues    = errors.New("doctor found unrepaired issues")
	errNotChecklist    = errors.New("extension is not a checklist")
	errNotImageGallery = errors.New("extension is not an image gallery")
	errMissingIdea     = errors.New("missing idea (or pass --all <bucket>)")
)

type errInvalidPosition string

func (e errInvalidPosition) Error() string {
	return fmt.Sprintf("invalid position %q (expected 1 or more)", string(e))
}

type ambiguousError struct {
	kind    model.Kind
	ref     string
	matches int
}

func (e ambiguousError) Error() string {
	return fmt.Sprintf("%s %q is ambiguous (%d matches); use a longer id", e.kind, e.ref, e.matches)
}
