package errors

import "net/http"

var (
	ErrRecordNotFound = New(
		"RECORD_NOT_FOUND",
		"Analysis record not found",
		http.StatusNotFound,
	)

	ErrInvalidTimestamp = New(
		"INVALID_TIMESTAMP",
		"Invalid timestamp value",
		http.StatusBadRequest,
	)

	ErrInvalidHSVRanges = New(
		"INVALID_HSV_RANGES",
		"Invalid HSV override ranges",
		http.StatusBadRequest,
	)

	ErrDownloadFailed = New(
		"DOWNLOAD_FAILED",
		"No tiles could be downloaded for the timestamp",
		http.StatusBadGateway,
	)

	ErrBoundaryNotFound = New(
		"BOUNDARY_NOT_FOUND",
		"Land boundary file is missing",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
