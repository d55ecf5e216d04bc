package companyerrors

import (
	"net/http"

	"sphere-timecontrol/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidSubdomain = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid subdomain, use 3-63 lowercase letters, digits or hyphens",
		http.StatusBadRequest,
	)

	ErrSubdomainTaken = apperror.New(
		apperror.CodeConflict,
		"Subdomain is already taken",
		http.StatusConflict,
	)
)
