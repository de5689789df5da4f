package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// lookup turns a missing row into a NotFound business error and wraps
// everything else.
func lookup(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return fmt.Errorf("%s: %w", code, err)
}
