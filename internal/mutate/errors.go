package mutate

import (
	"fmt"

	"ideas-cli/internal/model"
)

type NotFoundError struct {
	Kind model.Kind
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
