package handler

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rollcall/internal/csvexport"
	"rollcall/internal/domain"
	"rollcall/internal/service"
	"rollcall/internal/xlsxexport"
)

// formFileFields are the multipart fields accepted for batch uploads.
var formFileFields = []string{"files", "files[]"}

// AttendanceHandler handles batch processing and weekly report endpoints.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
	maxFileSize       int64
	dateHeaders       bool
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService service.AttendanceService, maxFileSize int64, dateHeaders bool) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		maxFileSize:       maxFileSize,
		dateHeaders:       dateHeaders,
	}
}

// WeekRow is one person's line in a weekly report.
type WeekRow struct {
	Surname   string                              `json:"surname"`
	FirstName string                              `json:"first_name"`
	Days      map[domain.Weekday]domain.DayStatus `json:"days"`
}

// WeekResponse is the JSON form of a weekly report.
type WeekResponse struct {
	Week      string    `json:"week"`
	WeekStart string    `json:"week_start"`
	Rows      []WeekRow `json:"rows"`
}

// ProcessBatch handles POST /api/v1/attendance/batches
func (h *AttendanceHandler) ProcessBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form with files is required")
		return
	}

	var headers []*multipart.FileHeader
	for _, field := range formFileFields {
		headers = append(headers, form.File[field]...)
	}
	if len(headers) == 0 {
		HandleError(c, domain.ErrNoDocuments)
		return
	}

	docs := make([]domain.Document, 0, len(headers))
	for _, fh := range headers {
		doc, err := h.readDocument(fh)
		if err != nil {
			status, code, _ := MapDomainError(err)
			RespondError(c, status, code, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	allowEmpty, _ := strconv.ParseBool(c.DefaultPostForm("allow_empty_roster", c.Query("allow_empty_roster")))

	result, err := h.attendanceService.ProcessBatch(c.Request.Context(), service.ProcessBatchInput{
		Documents:        docs,
		AllowEmptyRoster: allowEmpty,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	log.Printf("attendanceHandler.ProcessBatch: batch %s: %d weeks, %d skipped, %d failed",
		result.BatchID, len(result.Weeks), len(result.Skipped), len(result.Failed))
	RespondCreated(c, result)
}

func (h *AttendanceHandler) readDocument(fh *multipart.FileHeader) (domain.Document, error) {
	name := filepath.Base(fh.Filename)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if domain.AllowedExtensions[ext] != domain.FileTypePDF {
		return domain.Document{}, fmt.Errorf("%s: %w", name, domain.ErrUnsupportedFileType)
	}
	if fh.Size > h.maxFileSize {
		return domain.Document{}, fmt.Errorf("%s: %w", name, domain.ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.Document{}, fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(io.LimitReader(f, h.maxFileSize+1))
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(content)) > h.maxFileSize {
		return domain.Document{}, fmt.Errorf("%s: %w", name, domain.ErrFileTooLarge)
	}
	return domain.Document{Name: name, Content: content}, nil
}

// GetWeek handles GET /api/v1/attendance/weeks/:week?format=json|csv|xlsx
func (h *AttendanceHandler) GetWeek(c *gin.Context) {
	week, err := domain.ParseWeekKey(c.Param("week"))
	if err != nil {
		HandleError(c, err)
		return
	}

	format := domain.ReportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ReportFormatJSON))))
	switch format {
	case domain.ReportFormatXLSX:
		h.downloadWorkbook(c, week)
	case domain.ReportFormatCSV:
		h.downloadCSV(c, week)
	case domain.ReportFormatJSON:
		report, err := h.attendanceService.GetWeek(c.Request.Context(), week)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, toWeekResponse(report))
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be one of json, csv, xlsx")
	}
}

func (h *AttendanceHandler) downloadWorkbook(c *gin.Context, week domain.WeekKey) {
	data, err := h.attendanceService.GetWeekWorkbook(c.Request.Context(), week)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(week, "xlsx")))
	c.Data(http.StatusOK, xlsxexport.ContentType, data)
}

func (h *AttendanceHandler) downloadCSV(c *gin.Context, week domain.WeekKey) {
	report, err := h.attendanceService.GetWeek(c.Request.Context(), week)
	if err != nil {
		HandleError(c, err)
		return
	}

	var weekStart *time.Time
	if h.dateHeaders {
		monday := week.Monday()
		weekStart = &monday
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(week, "csv")))
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	err = w.WriteRecord(report.Record, weekStart)
	w.Flush()
	if err == nil {
		err = w.Error()
	}
	if err != nil {
		log.Printf("attendanceHandler.downloadCSV: %s: %v", week, err)
	}
}

func toWeekResponse(report *service.WeekReport) WeekResponse {
	resp := WeekResponse{
		Week:      report.Week.String(),
		WeekStart: report.Week.Monday().Format(time.DateOnly),
		Rows:      []WeekRow{},
	}
	for _, p := range report.Record.Sorted() {
		days, _ := report.Record.Get(p)
		resp.Rows = append(resp.Rows, WeekRow{
			Surname:   p.Surname,
			FirstName: p.FirstName,
			Days:      days,
		})
	}
	return resp
}
