package providers

import (
	"context"

	"github.com/lifeline-ai/backend/internal/domain/entities"
)

// HospitalDirectory is a read-only source of hospital candidates. The static
// in-memory adapter backs it today; a real facility search API can be
// substituted without touching the distance and ranking logic.
type HospitalDirectory interface {
	// List returns all candidates in a stable order. Distance on the
	// returned entries is unset.
	List(ctx context.Context) ([]entities.Hospital, error)
}
