package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rollcall/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrNoDocuments):
		return http.StatusBadRequest, "NO_DOCUMENTS", "at least one document is required"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidWeek):
		return http.StatusBadRequest, "INVALID_WEEK", "week must have the form YYYY-Www"
	case errors.Is(err, domain.ErrInvalidPersonName):
		return http.StatusBadRequest, "INVALID_NAME", "name must have the form \"Surname, FirstName\""
	case errors.Is(err, domain.ErrDuplicatePerson):
		return http.StatusConflict, "DUPLICATE_PERSON", "person is already on the roster"
	case errors.Is(err, domain.ErrMalformedTable):
		return http.StatusUnprocessableEntity, "MALFORMED_REPORT", "stored weekly report is malformed"
	case errors.Is(err, domain.ErrDocumentUnreadable):
		return http.StatusUnprocessableEntity, "DOCUMENT_UNREADABLE", "document could not be read"
	case errors.Is(err, domain.ErrMalformedAttendanceRow):
		return http.StatusUnprocessableEntity, "MALFORMED_ATTENDANCE_ROW", "document contains a malformed attendance row"
	case errors.Is(err, domain.ErrDateExtraction):
		return http.StatusBadRequest, "DATE_EXTRACTION_FAILED", "cannot determine date from file name"
	case errors.Is(err, domain.ErrRosterLoad):
		return http.StatusServiceUnavailable, "ROSTER_LOAD_FAILED", "roster could not be loaded"
	case errors.Is(err, domain.ErrRosterUnavailable):
		return http.StatusServiceUnavailable, "ROSTER_UNAVAILABLE", "roster backend unavailable"
	case errors.Is(err, domain.ErrRosterSave):
		return http.StatusInternalServerError, "ROSTER_SAVE_FAILED", "roster could not be saved"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
