package port

import (
	"context"

	"rollcall/internal/domain"
)

// RosterRepository persists the always-included roster.
// Load drops malformed stored entries rather than failing on them.
type RosterRepository interface {
	Load(ctx context.Context) (domain.Roster, error)
	Save(ctx context.Context, roster domain.Roster) error
}
