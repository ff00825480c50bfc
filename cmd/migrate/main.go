// Command migrate applies the roster table migrations.
// Usage: go run ./cmd/migrate [up|down|steps N|version]
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"rollcall/internal/config"
)

const usage = "usage: migrate [up|down|steps N|version]"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source := os.Getenv("ROLLCALL_MIGRATIONS_PATH")
	if source == "" {
		source = "db/migrations"
	}

	// golang-migrate's postgres driver registers the postgres:// scheme.
	m, err := migrate.New("file://"+source, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch args[0] {
	case "up":
		return report(m.Up(), "migrations applied")
	case "down":
		return report(m.Down(), "migrations reverted")
	case "steps":
		if len(args) < 2 {
			return errors.New("steps requires a number argument")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid steps argument: %w", err)
		}
		return report(m.Steps(n), fmt.Sprintf("applied %d migration steps", n))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}
}

func report(err error, done string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("no change")
		return nil
	}
	if err != nil {
		return err
	}
	log.Println(done)
	return nil
}
