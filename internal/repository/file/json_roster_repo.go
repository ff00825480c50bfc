package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

type jsonRosterRepo struct {
	path string
}

// NewJSONRosterRepo stores the roster as a JSON array of "Surname, FirstName" strings.
func NewJSONRosterRepo(path string) port.RosterRepository {
	return &jsonRosterRepo{path: path}
}

func (r *jsonRosterRepo) Load(ctx context.Context) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}
	data, err := readOptional(r.path)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("%w: reading %s: %v", domain.ErrRosterLoad, r.path, err)
	}
	if len(data) == 0 {
		return domain.Roster{}, nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return domain.Roster{}, fmt.Errorf("%w: decoding %s: %v", domain.ErrRosterLoad, r.path, err)
	}

	var roster domain.Roster
	for _, name := range names {
		p, err := domain.ParsePersonName(name)
		if err != nil {
			log.Printf("jsonRosterRepo.Load: dropping entry %q: %v", name, err)
			continue
		}
		roster.Add(p)
	}
	return roster, nil
}

func (r *jsonRosterRepo) Save(ctx context.Context, roster domain.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	names := make([]string, 0, roster.Len())
	for _, p := range roster.Members() {
		names = append(names, p.String())
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", domain.ErrRosterSave, err)
	}
	if err := writeAtomic(r.path, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRosterSave, r.path, err)
	}
	return nil
}
