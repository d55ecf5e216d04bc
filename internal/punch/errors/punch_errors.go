package puncherrors

import (
	"net/http"

	"sphere-timecontrol/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		"ALREADY_CHECKED_IN",
		"employee is already checked in",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		"NOT_CHECKED_IN",
		"employee is not checked in",
		http.StatusConflict,
	)
	ErrNotWorking = apperror.New(
		"NOT_WORKING",
		"employee must be working to start a break",
		http.StatusConflict,
	)
	ErrNoOpenBreak = apperror.New(
		"NO_OPEN_BREAK",
		"no matching open break to end",
		http.StatusConflict,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"invalid punch kind",
		http.StatusBadRequest,
	)
	ErrPunchNotFound = apperror.New(
		apperror.CodeNotFound,
		"punch not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid occurred_at, expected RFC3339 timestamp",
		http.StatusBadRequest,
	)
	ErrCorrectionTooFarFuture = apperror.New(
		apperror.CodeInvalidState,
		"occurred_at cannot be more than 5 minutes in the future",
		http.StatusBadRequest,
	)
	ErrCorrectionTooFarPast = apperror.New(
		apperror.CodeInvalidState,
		"occurred_at cannot be more than 30 days in the past",
		http.StatusBadRequest,
	)
	ErrCorrectionNotOwned = apperror.New(
		apperror.CodeForbidden,
		"punch belongs to another employee",
		http.StatusForbidden,
	)
)
