package file

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

type textRosterRepo struct {
	path string
}

// NewTextRosterRepo stores the roster as one "Surname, FirstName" per line.
func NewTextRosterRepo(path string) port.RosterRepository {
	return &textRosterRepo{path: path}
}

func (r *textRosterRepo) Load(ctx context.Context) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}
	data, err := readOptional(r.path)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("%w: reading %s: %v", domain.ErrRosterLoad, r.path, err)
	}
	return parseRosterLines(data, r.path), nil
}

func (r *textRosterRepo) Save(ctx context.Context, roster domain.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, p := range roster.Members() {
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}
	if err := writeAtomic(r.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRosterSave, r.path, err)
	}
	return nil
}

// parseRosterLines keeps well-formed lines and drops the rest.
func parseRosterLines(data []byte, source string) domain.Roster {
	var roster domain.Roster
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		p, err := domain.ParsePersonName(text)
		if err != nil {
			log.Printf("textRosterRepo.Load: %s:%d: dropping entry %q: %v", source, line, text, err)
			continue
		}
		roster.Add(p)
	}
	return roster
}
