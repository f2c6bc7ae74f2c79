// AngelaMos | 2026
// params.go

package core

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// IDParam returns the {name} URL segment. Anything that is not a UUID
// cannot name a row, so it is reported as not found.
func IDParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if err := uuid.Validate(id); err != nil {
		return "", fmt.Errorf("%s %q: %w", name, id, ErrNotFound)
	}
	return id, nil
}
