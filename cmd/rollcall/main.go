// Command rollcall merges a set of time-clock PDF exports into the weekly
// attendance tables, using the same backends as the server.
//
// Usage: rollcall [-allow-empty-roster] [-csv DIR] PATH...
//
// Each PATH is a PDF file or a directory whose *.pdf files are processed.
// The batch result is printed to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"rollcall/internal/bootstrap"
	"rollcall/internal/config"
	"rollcall/internal/csvexport"
	"rollcall/internal/domain"
	"rollcall/internal/logging"
	"rollcall/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rollcall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	allowEmpty := fs.Bool("allow-empty-roster", false, "process even when the roster cannot be loaded")
	csvDir := fs.String("csv", "", "also write each processed week as CSV into this directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: rollcall [-allow-empty-roster] [-csv DIR] PATH...")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := process(ctx, fs.Args(), *allowEmpty, *csvDir, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "rollcall: %v\n", err)
		return 1
	}
	return 0
}

func process(ctx context.Context, paths []string, allowEmpty bool, csvDir string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	docs, err := collectDocuments(paths, cfg.Processing.MaxFileSize())
	if err != nil {
		return err
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	result, err := app.Attendance.ProcessBatch(ctx, service.ProcessBatchInput{
		Documents:        docs,
		AllowEmptyRoster: allowEmpty,
	})
	if err != nil {
		return err
	}

	if csvDir != "" {
		if err := exportCSV(ctx, app.Attendance, result, csvDir, cfg.Processing.DateSuffixHeaders); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// collectDocuments reads every PDF named by paths. Directories contribute
// their *.pdf entries; subdirectories are not descended into.
func collectDocuments(paths []string, maxSize int64) ([]domain.Document, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				continue
			}
			files = append(files, filepath.Join(p, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, domain.ErrNoDocuments
	}
	sort.Strings(files)

	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrUnsupportedFileType)
		}
		info, err := os.Stat(f)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxSize {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrFileTooLarge)
		}
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		docs = append(docs, domain.Document{Name: name, Content: content})
	}
	return docs, nil
}

func exportCSV(ctx context.Context, svc service.AttendanceService, result *service.BatchResult, dir string, dateHeaders bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, wr := range result.Weeks {
		week, err := domain.ParseWeekKey(wr.Week)
		if err != nil {
			return err
		}
		report, err := svc.GetWeek(ctx, week)
		if err != nil {
			return fmt.Errorf("loading %s: %w", wr.Week, err)
		}
		if err := writeWeekCSV(filepath.Join(dir, csvexport.BuildFilename(week, "csv")), report, dateHeaders); err != nil {
			return err
		}
	}
	return nil
}

func writeWeekCSV(path string, report *service.WeekReport, dateHeaders bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var weekStart *time.Time
	if dateHeaders {
		monday := report.Week.Monday()
		weekStart = &monday
	}

	if _, err := f.Write(csvexport.BOM); err != nil {
		return err
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteRecord(report.Record, weekStart); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("rollcall.writeWeekCSV: wrote %s", path)
	return nil
}
