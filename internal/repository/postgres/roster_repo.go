package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

type rosterRepo struct {
	db *sqlx.DB
}

// NewRosterRepo creates a new PostgreSQL-backed RosterRepository.
func NewRosterRepo(db *sqlx.DB) port.RosterRepository {
	return &rosterRepo{db: db}
}

func (r *rosterRepo) Load(ctx context.Context) (domain.Roster, error) {
	var members []domain.PersonKey
	err := r.db.SelectContext(ctx, &members,
		"SELECT surname, first_name FROM roster_members ORDER BY position")
	if err != nil {
		return domain.Roster{}, fmt.Errorf("rosterRepo.Load: %w: %v", domain.ErrRosterUnavailable, err)
	}
	return domain.NewRoster(members...), nil
}

// Save replaces the stored roster in a single transaction.
func (r *rosterRepo) Save(ctx context.Context, roster domain.Roster) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rosterRepo.Save begin: %w: %v", domain.ErrRosterUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM roster_members"); err != nil {
		return fmt.Errorf("rosterRepo.Save delete: %w: %v", domain.ErrRosterSave, err)
	}
	for i, p := range roster.Members() {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO roster_members (position, surname, first_name) VALUES ($1, $2, $3)",
			i, p.Surname, p.FirstName)
		if err != nil {
			return fmt.Errorf("rosterRepo.Save insert %s: %w: %v", p, domain.ErrRosterSave, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("rosterRepo.Save commit: %w: %v", domain.ErrRosterSave, err)
	}
	return nil
}
