// Package pagination implements offset-based listing parameters.
//
// Pagination is stable only if no concurrent writes occur between pages;
// this is a documented limitation of the offset scheme, not something the
// stores compensate for.
package pagination

import (
	"strconv"

	"gorm.io/gorm"

	apperrors "kharcha/internal/errors"
)

const (
	// DefaultLimit is applied when no limit is supplied.
	DefaultLimit = 100
	// MaxLimit is the largest page a caller may request.
	MaxLimit = 1000
)

// ListParams holds validated skip/limit values.
type ListParams struct {
	Skip  int
	Limit int
}

// Parse validates raw skip and limit query values. Empty strings take the
// defaults (skip 0, limit DefaultLimit). A non-integer value, a negative
// skip, or a limit outside [1, MaxLimit] is invalid input.
func Parse(skipStr, limitStr string) (ListParams, error) {
	p := ListParams{Skip: 0, Limit: DefaultLimit}

	if skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			return p, apperrors.WithMessage(apperrors.ErrInvalidInput, "skip must be a non-negative integer")
		}
		p.Skip = skip
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > MaxLimit {
			return p, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be an integer between 1 and 1000")
		}
		p.Limit = limit
	}

	return p, nil
}

// Scope returns a GORM scope applying OFFSET and LIMIT for the params.
func Scope(p ListParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Skip).Limit(p.Limit)
	}
}
