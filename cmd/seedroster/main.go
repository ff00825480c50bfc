// Command seedroster loads roster names from a workbook or text file into the
// configured roster backend.
// Workbooks are read from the first sheet: the column headed "name" if there
// is one, otherwise column A. Text files hold one "Surname, FirstName" per line.
// Usage: go run ./cmd/seedroster [-merge] FILE
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"rollcall/internal/bootstrap"
	"rollcall/internal/config"
	"rollcall/internal/domain"
)

func main() {
	merge := flag.Bool("merge", false, "add missing names instead of replacing the roster")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: seedroster [-merge] FILE")
	}
	if err := run(flag.Arg(0), *merge); err != nil {
		log.Fatal(err)
	}
}

func run(path string, merge bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	names, err := readNames(path)
	if err != nil {
		return err
	}
	valid := validNames(names)
	log.Printf("Read %d names from %s (%d dropped)", len(valid), path, len(names)-len(valid))

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	ctx := context.Background()
	if !merge {
		members, err := app.Roster.Replace(ctx, valid)
		if err != nil {
			return fmt.Errorf("replacing roster: %w", err)
		}
		log.Printf("Roster replaced: %d members", len(members))
		return nil
	}

	added := 0
	for _, name := range valid {
		if _, err := app.Roster.Add(ctx, name); err != nil {
			if errors.Is(err, domain.ErrDuplicatePerson) {
				continue
			}
			return fmt.Errorf("adding %q: %w", name, err)
		}
		added++
	}
	log.Printf("Roster merged: %d added", added)
	return nil
}

// readNames returns the raw name cells or lines of path.
func readNames(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbookNames(path)
	default:
		return readTextNames(path)
	}
}

func readWorkbookNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col, start := 0, 0
	for i, cell := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(cell), "name") {
			col, start = i, 1
			break
		}
	}

	var names []string
	for _, row := range rows[start:] {
		if cell := strings.TrimSpace(cellVal(row, col)); cell != "" {
			names = append(names, cell)
		}
	}
	return names, nil
}

func readTextNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names, sc.Err()
}

// validNames keeps entries that parse as a person name, in order.
func validNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, err := domain.ParsePersonName(n); err != nil {
			log.Printf("WARN: dropping %q: %v", n, err)
			continue
		}
		out = append(out, n)
	}
	return out
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
