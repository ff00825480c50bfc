package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrNoDocuments            = errors.New("no documents supplied")
	ErrDateExtraction         = errors.New("cannot determine date from file name")
	ErrDocumentUnreadable     = errors.New("document could not be read")
	ErrNotAttendanceRow       = errors.New("row is not an attendance record")
	ErrMalformedAttendanceRow = errors.New("malformed attendance row")
	ErrMalformedTable         = errors.New("malformed weekly attendance table")
	ErrInvalidPersonName      = errors.New("name must have the form \"Surname, FirstName\"")
	ErrInvalidWeek            = errors.New("invalid week key; expected YYYY-Www")
	ErrDuplicatePerson        = errors.New("person already on roster")
	ErrRosterLoad             = errors.New("roster could not be loaded")
	ErrRosterSave             = errors.New("roster could not be saved")
	ErrRosterUnavailable      = errors.New("roster backend unavailable")
)
