// Package bootstrap builds the backends and services selected by configuration.
package bootstrap

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"rollcall/internal/config"
	"rollcall/internal/domain"
	"rollcall/internal/email/noop"
	"rollcall/internal/email/ses"
	"rollcall/internal/pdfwords"
	"rollcall/internal/port"
	"rollcall/internal/repository/file"
	"rollcall/internal/repository/objectstore"
	"rollcall/internal/repository/postgres"
	"rollcall/internal/service"
	s3storage "rollcall/internal/storage/s3"
)

// App holds the wired services. DB is nil unless the roster lives in postgres.
type App struct {
	Attendance service.AttendanceService
	Roster     service.RosterService
	DB         *sqlx.DB
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// builder memoizes the object storage client shared by the sheet roster and
// the s3 report store.
type builder struct {
	cfg     *config.Config
	storage port.ObjectStorage
	db      *sqlx.DB
}

// Build wires the roster repository, report store, notifier and document
// reader selected by cfg into the attendance and roster services.
func Build(cfg *config.Config) (*App, error) {
	b := &builder{cfg: cfg}

	rosterRepo, err := b.rosterRepo()
	if err != nil {
		return nil, err
	}
	reports, err := b.reportStore()
	if err != nil {
		b.close()
		return nil, err
	}
	notifier, err := b.notifier()
	if err != nil {
		b.close()
		return nil, err
	}

	attendanceSvc := service.NewAttendanceService(pdfwords.NewReader(), rosterRepo, reports, notifier, service.AttendanceConfig{
		RowTolerance: cfg.Processing.RowTolerance,
		Concurrency:  cfg.Processing.Concurrency,
		DateHeaders:  cfg.Processing.DateSuffixHeaders,
	})

	log.Printf("bootstrap.Build: roster=%s reports=%s email=%s", cfg.Roster.Backend, cfg.Reports.Backend, cfg.Email.Provider)
	return &App{
		Attendance: attendanceSvc,
		Roster:     service.NewRosterService(rosterRepo),
		DB:         b.db,
	}, nil
}

func (b *builder) close() {
	if b.db != nil {
		_ = b.db.Close()
	}
}

func (b *builder) objectStorage() (port.ObjectStorage, error) {
	if b.storage != nil {
		return b.storage, nil
	}
	storage, err := s3storage.NewS3Client(&b.cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	b.storage = storage
	return storage, nil
}

func (b *builder) rosterRepo() (port.RosterRepository, error) {
	switch domain.RosterBackend(b.cfg.Roster.Backend) {
	case domain.RosterBackendText:
		return file.NewTextRosterRepo(b.cfg.Roster.Path), nil
	case domain.RosterBackendJSON:
		return file.NewJSONRosterRepo(b.cfg.Roster.Path), nil
	case domain.RosterBackendPostgres:
		db, err := postgres.NewDB(&b.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		b.db = db
		return postgres.NewRosterRepo(db), nil
	case domain.RosterBackendSheet:
		storage, err := b.objectStorage()
		if err != nil {
			return nil, err
		}
		return objectstore.NewSheetRosterRepo(storage, b.cfg.S3.Bucket, b.cfg.Roster.SheetKey), nil
	default:
		return nil, fmt.Errorf("unknown roster backend %q", b.cfg.Roster.Backend)
	}
}

func (b *builder) reportStore() (port.ReportStore, error) {
	switch b.cfg.Reports.Backend {
	case "local":
		return file.NewReportStore(b.cfg.Reports.Dir), nil
	case "s3":
		storage, err := b.objectStorage()
		if err != nil {
			return nil, err
		}
		return objectstore.NewReportStore(storage, b.cfg.S3.Bucket, b.cfg.Reports.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown reports backend %q", b.cfg.Reports.Backend)
	}
}

func (b *builder) notifier() (port.ReportNotifier, error) {
	switch b.cfg.Email.Provider {
	case "", "noop":
		return noop.NewNoopSender(), nil
	case "ses":
		sender, err := ses.NewSESSender(b.cfg.Email.Region, b.cfg.Email.FromAddress, b.cfg.Email.FromName, b.cfg.Email.Recipients)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", b.cfg.Email.Provider)
	}
}
