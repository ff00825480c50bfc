package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"rollcall/internal/attendance"
	"rollcall/internal/domain"
	"rollcall/internal/extract"
	"rollcall/internal/port"
	"rollcall/internal/xlsxexport"
)

// AttendanceConfig holds settings for batch processing.
type AttendanceConfig struct {
	RowTolerance float64
	Concurrency  int
	DateHeaders  bool
}

// ProcessBatchInput is the DTO for processing a batch of time-clock exports.
type ProcessBatchInput struct {
	Documents        []domain.Document
	AllowEmptyRoster bool
}

// DocumentFailure reports a document that was skipped or could not be processed.
type DocumentFailure struct {
	Name   string `json:"name"`
	Week   string `json:"week,omitempty"`
	Reason string `json:"reason"`
}

// WeekFailure reports a week whose table could not be produced.
type WeekFailure struct {
	Week   string `json:"week"`
	Reason string `json:"reason"`
}

// WeekResult summarizes a week that was merged and saved.
type WeekResult struct {
	Week      string                                      `json:"week"`
	WeekStart string                                      `json:"week_start"`
	ReportKey string                                      `json:"report_key"`
	Documents []string                                    `json:"documents"`
	People    int                                         `json:"people"`
	Counts    map[domain.Weekday]map[domain.DayStatus]int `json:"counts"`
}

// BatchResult contains per-week and per-document outcomes of a batch.
type BatchResult struct {
	BatchID      uuid.UUID         `json:"batch_id"`
	RosterSize   int               `json:"roster_size"`
	Weeks        []WeekResult      `json:"weeks"`
	Skipped      []DocumentFailure `json:"skipped"`
	Failed       []DocumentFailure `json:"failed"`
	WeekFailures []WeekFailure     `json:"week_failures"`
}

// WeekReport is a stored weekly table.
type WeekReport struct {
	Week   domain.WeekKey
	Record *domain.AttendanceRecord
}

// AttendanceService defines the attendance reconciliation contract.
type AttendanceService interface {
	ProcessBatch(ctx context.Context, input ProcessBatchInput) (*BatchResult, error)
	GetWeek(ctx context.Context, week domain.WeekKey) (*WeekReport, error)
	GetWeekWorkbook(ctx context.Context, week domain.WeekKey) ([]byte, error)
}

type attendanceService struct {
	extractor  *extract.Extractor
	rosterRepo port.RosterRepository
	reports    port.ReportStore
	notifier   port.ReportNotifier
	cfg        AttendanceConfig

	// weekLocks serializes load-merge-save of one week across batches.
	mu        sync.Mutex
	weekLocks map[domain.WeekKey]*sync.Mutex
}

// NewAttendanceService creates a new AttendanceService implementation.
func NewAttendanceService(
	reader port.DocumentReader,
	rosterRepo port.RosterRepository,
	reports port.ReportStore,
	notifier port.ReportNotifier,
	cfg AttendanceConfig,
) AttendanceService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &attendanceService{
		extractor:  extract.NewExtractor(reader, cfg.RowTolerance),
		rosterRepo: rosterRepo,
		reports:    reports,
		notifier:   notifier,
		cfg:        cfg,
		weekLocks:  make(map[domain.WeekKey]*sync.Mutex),
	}
}

// ReportKey names the stored workbook for week.
func ReportKey(week domain.WeekKey) string {
	return week.String() + ".xlsx"
}

// weekOutcome is the result of processing one week; exactly one of result
// and failure is set.
type weekOutcome struct {
	result  *WeekResult
	failure *WeekFailure
	failed  []DocumentFailure
}

func (s *attendanceService) ProcessBatch(ctx context.Context, input ProcessBatchInput) (*BatchResult, error) {
	if len(input.Documents) == 0 {
		return nil, domain.ErrNoDocuments
	}

	roster, err := s.rosterRepo.Load(ctx)
	if err != nil {
		if !input.AllowEmptyRoster {
			return nil, fmt.Errorf("loading roster: %w", err)
		}
		log.Printf("attendanceService.ProcessBatch: roster unavailable, continuing with empty roster: %v", err)
		roster = domain.Roster{}
	}

	batch := &BatchResult{
		BatchID:      uuid.New(),
		RosterSize:   roster.Len(),
		Weeks:        []WeekResult{},
		Skipped:      []DocumentFailure{},
		Failed:       []DocumentFailure{},
		WeekFailures: []WeekFailure{},
	}

	weeks, skipped := attendance.Partition(input.Documents, nil)
	for _, sk := range skipped {
		log.Printf("attendanceService.ProcessBatch: batch %s: skipping %s: %v", batch.BatchID, sk.Name, sk.Err)
		batch.Skipped = append(batch.Skipped, DocumentFailure{Name: sk.Name, Reason: sk.Err.Error()})
	}

	log.Printf("attendanceService.ProcessBatch: batch %s: %d documents across %d weeks (roster=%d)",
		batch.BatchID, len(input.Documents), len(weeks), roster.Len())

	outcomes := make([]weekOutcome, len(weeks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range weeks {
		wb := weeks[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.processWeek(gctx, wb, roster)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		batch.Failed = append(batch.Failed, o.failed...)
		if o.failure != nil {
			batch.WeekFailures = append(batch.WeekFailures, *o.failure)
			continue
		}
		batch.Weeks = append(batch.Weeks, *o.result)
	}
	return batch, nil
}

// processWeek merges one week's documents into its stored table. Documents
// are applied strictly in order.
func (s *attendanceService) processWeek(ctx context.Context, wb attendance.WeekBatch, roster domain.Roster) weekOutcome {
	unlock := s.lockWeek(wb.Week)
	defer unlock()

	week := wb.Week.String()
	key := ReportKey(wb.Week)
	var out weekOutcome

	existing, err := s.loadWeek(ctx, key)
	if err != nil {
		log.Printf("attendanceService.processWeek: %s: %v", week, err)
		out.failure = &WeekFailure{Week: week, Reason: err.Error()}
		return out
	}

	var observations []*attendance.Observations
	var processed []string
	for _, doc := range wb.Documents {
		obs, err := s.classifyDocument(ctx, doc)
		if err != nil {
			log.Printf("attendanceService.processWeek: %s: document %s failed: %v", week, doc.Name, err)
			out.failed = append(out.failed, DocumentFailure{Name: doc.Name, Week: week, Reason: err.Error()})
			continue
		}
		observations = append(observations, obs)
		processed = append(processed, doc.Name)
	}
	if len(observations) == 0 {
		out.failure = &WeekFailure{Week: week, Reason: "no readable documents"}
		return out
	}

	merged := attendance.Merge(existing, observations, roster)

	data, err := xlsxexport.Encode(merged, wb.Week, xlsxexport.Options{DateHeaders: s.cfg.DateHeaders})
	if err != nil {
		out.failure = &WeekFailure{Week: week, Reason: fmt.Sprintf("encoding workbook: %v", err)}
		return out
	}
	if err := s.reports.Put(ctx, key, data); err != nil {
		log.Printf("attendanceService.processWeek: %s: saving report: %v", week, err)
		out.failure = &WeekFailure{Week: week, Reason: fmt.Sprintf("saving report: %v", err)}
		return out
	}

	counts := merged.DayCounts()
	out.result = &WeekResult{
		Week:      week,
		WeekStart: wb.Week.Monday().Format(time.DateOnly),
		ReportKey: key,
		Documents: processed,
		People:    merged.Len(),
		Counts:    counts,
	}

	failures := make([]string, 0, len(out.failed))
	for _, f := range out.failed {
		failures = append(failures, f.Name+": "+f.Reason)
	}
	if err := s.notifier.SendWeeklySummary(ctx, port.WeeklySummary{
		Week:      wb.Week,
		People:    merged.Len(),
		Documents: len(processed),
		Counts:    counts,
		Failures:  failures,
	}); err != nil {
		log.Printf("attendanceService.processWeek: %s: sending summary: %v", week, err)
	}

	log.Printf("attendanceService.processWeek: %s: merged %d documents, %d people", week, len(processed), merged.Len())
	return out
}

// lockWeek acquires the mutex for week and returns its release.
func (s *attendanceService) lockWeek(week domain.WeekKey) func() {
	s.mu.Lock()
	l, ok := s.weekLocks[week]
	if !ok {
		l = &sync.Mutex{}
		s.weekLocks[week] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// loadWeek returns the stored table for key, or nil when none exists yet.
func (s *attendanceService) loadWeek(ctx context.Context, key string) (*domain.AttendanceRecord, error) {
	data, err := s.reports.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading existing report: %w", err)
	}
	record, err := xlsxexport.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("existing report %s: %w", key, err)
	}
	return record, nil
}

func (s *attendanceService) classifyDocument(ctx context.Context, doc domain.Document) (*attendance.Observations, error) {
	rows, err := s.extractor.ExtractTable(ctx, doc)
	if err != nil {
		return nil, err
	}
	return attendance.Classify(rows)
}

func (s *attendanceService) GetWeek(ctx context.Context, week domain.WeekKey) (*WeekReport, error) {
	data, err := s.GetWeekWorkbook(ctx, week)
	if err != nil {
		return nil, err
	}
	record, err := xlsxexport.Decode(data)
	if err != nil {
		return nil, err
	}
	return &WeekReport{Week: week, Record: record}, nil
}

func (s *attendanceService) GetWeekWorkbook(ctx context.Context, week domain.WeekKey) ([]byte, error) {
	data, err := s.reports.Get(ctx, ReportKey(week))
	if err != nil {
		return nil, err
	}
	return data, nil
}
