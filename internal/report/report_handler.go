package report

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
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

func (h *Handler) GetDaily(c *gin.Context) {
	tc := tenantFromGin(c)

	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeServiceError(c, reporterrors.ErrInvalidDate)
			return
		}
		date = parsed
	}

	rows, err := h.service.Daily(c.Request.Context(), tc, date, employeeFilter(c), departmentFilter(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) GetRange(c *gin.Context) {
	tc := tenantFromGin(c)

	from, to, err := parseRangeQuery(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	rows, err := h.service.Range(c.Request.Context(), tc, from, to, employeeFilter(c), departmentFilter(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 {
		pageSize = 50
	}

	total := int64(len(rows))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, rows[start:end], &meta)
}

func (h *Handler) GetSummary(c *gin.Context) {
	tc := tenantFromGin(c)

	from, to, err := parseRangeQuery(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), tc, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ExportCSV streams the range report as a CSV attachment.
func (h *Handler) ExportCSV(c *gin.Context) {
	tc := tenantFromGin(c)

	from, to, err := parseRangeQuery(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	rows, err := h.service.Range(c.Request.Context(), tc, from, to, employeeFilter(c), departmentFilter(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"employee_number", "employee_name", "date", "status",
		"worked_hours", "break_hours", "overtime_hours",
		"is_late", "is_early_leave", "first_check_in", "last_check_out",
	})
	for _, row := range rows {
		record := []string{
			row.EmployeeNumber,
			row.EmployeeName,
			row.Date,
			row.Status,
			strconv.FormatFloat(row.WorkedHours, 'f', 2, 64),
			strconv.FormatFloat(row.BreakHours, 'f', 2, 64),
			strconv.FormatFloat(row.OvertimeHours, 'f', 2, 64),
			strconv.FormatBool(row.IsLate),
			strconv.FormatBool(row.IsEarlyLeave),
			deref(row.FirstCheckIn),
			deref(row.LastCheckOut),
		}
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func departmentFilter(c *gin.Context) []string {
	return c.QueryArray("department_id")
}

func employeeFilter(c *gin.Context) []string {
	return c.QueryArray("employee_id")
}

// parseRangeQuery reads from/to date filters, defaulting to the current month.
func parseRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now.Truncate(24 * time.Hour)

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
