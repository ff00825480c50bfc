package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

// RosterService manages the always-included roster.
type RosterService interface {
	List(ctx context.Context) ([]domain.PersonKey, error)
	Add(ctx context.Context, name string) (domain.PersonKey, error)
	Remove(ctx context.Context, name string) error
	Replace(ctx context.Context, names []string) ([]domain.PersonKey, error)
}

type rosterService struct {
	repo port.RosterRepository
	mu   sync.Mutex
}

// NewRosterService creates a new RosterService implementation.
func NewRosterService(repo port.RosterRepository) RosterService {
	return &rosterService{repo: repo}
}

func (s *rosterService) List(ctx context.Context) ([]domain.PersonKey, error) {
	roster, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return roster.Members(), nil
}

func (s *rosterService) Add(ctx context.Context, name string) (domain.PersonKey, error) {
	p, err := domain.ParsePersonName(name)
	if err != nil {
		return domain.PersonKey{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.repo.Load(ctx)
	if err != nil {
		return domain.PersonKey{}, err
	}
	if !roster.Add(p) {
		return domain.PersonKey{}, domain.ErrDuplicatePerson
	}
	if err := s.repo.Save(ctx, roster); err != nil {
		return domain.PersonKey{}, err
	}
	log.Printf("rosterService.Add: added %s (%d members)", p, roster.Len())
	return p, nil
}

func (s *rosterService) Remove(ctx context.Context, name string) error {
	p, err := domain.ParsePersonName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if !roster.Remove(p) {
		return domain.ErrNotFound
	}
	if err := s.repo.Save(ctx, roster); err != nil {
		return err
	}
	log.Printf("rosterService.Remove: removed %s (%d members)", p, roster.Len())
	return nil
}

func (s *rosterService) Replace(ctx context.Context, names []string) ([]domain.PersonKey, error) {
	var roster domain.Roster
	for _, name := range names {
		p, err := domain.ParsePersonName(name)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		roster.Add(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, roster); err != nil {
		return nil, err
	}
	log.Printf("rosterService.Replace: roster now has %d members", roster.Len())
	return roster.Members(), nil
}
