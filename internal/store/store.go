// Package store keeps finished analyses addressable by company id until they
// expire.
package store

import (
	"context"
	"errors"

	"truthrecruit-engine/internal/domain"
)

var ErrNotFound = errors.New("report not found")

type Store interface {
	Save(ctx context.Context, a domain.CompanyAnalysis) error
	// Get returns ErrNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (domain.CompanyAnalysis, error)
	Delete(ctx context.Context, id string) error
	// PurgeExpired removes expired reports and reports how many went away.
	PurgeExpired(ctx context.Context) (int64, error)
	Close() error
}

// Noop keeps nothing.
type Noop struct{}

func (Noop) Save(context.Context, domain.CompanyAnalysis) error { return nil }
func (Noop) Get(context.Context, string) (domain.CompanyAnalysis, error) {
	return domain.CompanyAnalysis{}, ErrNotFound
}
func (Noop) Delete(context.Context, string) error        { return ErrNotFound }
func (Noop) PurgeExpired(context.Context) (int64, error) { return 0, nil }
func (Noop) Close() error                                { return nil }
