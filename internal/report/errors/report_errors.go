package reporterrors

import (
	"net/http"

	"sphere-timecontrol/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range, 'from' must not be after 'to'",
		http.StatusBadRequest,
	)
	ErrRangeTooWide = apperror.New(
		apperror.CodeInvalidInput,
		"Date range too wide, maximum 92 days per report",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
