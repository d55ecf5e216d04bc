package summary

import (
	"net/http"
	"time"

	reporterrors "sphere-timecontrol/internal/report/errors"
	"sphere-timecontrol/internal/shared/apperror"
	"sphere-timecontrol/internal/shared/response"
	"sphere-timecontrol/internal/tenant"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func tenantFromGin(c *gin.Context) tenant.Context {
	return tenant.Context{
		CompanyID: c.GetString("company_id"),
		Subdomain: c.GetString("tenant_subdomain"),
	}
}

func actorID(c *gin.Context) string {
	id := c.GetString("employee_id")
	if id == "" {
		id = c.GetString("user_id_validated")
	}
	return id
}

func (h *Handler) GetAll(c *gin.Context) {
	tc := tenantFromGin(c)
	canReadAll := c.GetBool("has_read_all")

	from, to, err := parseRangeQuery(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), tc, actorID(c), canReadAll, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// parseRangeQuery reads from/to date filters, defaulting to the current month.
func parseRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidDate
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidDate
		}
		to = parsed
	}
	return from, to, nil
}
