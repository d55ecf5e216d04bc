package punch

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"sphere-timecontrol/internal/shared/apperror"
	"sphere-timecontrol/internal/shared/response"
	"sphere-timecontrol/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
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

// Record returns a handler that records one punch of a fixed kind.
// One route per kind keeps the sequencer the only place that knows
// the chaining rules.
func (h *Handler) Record(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lockKey, _ := c.Get("idempotency_lock_key")
		cacheKey, _ := c.Get("idempotency_cache_key")

		if h.rdb != nil {
			if lk, ok := lockKey.(string); ok && lk != "" {
				defer h.rdb.Del(c.Request.Context(), lk)
			}
		}

		tc := tenantFromGin(c)
		employeeID := actorID(c)

		var req PunchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
			return
		}

		resp, err := h.service.Punch(c.Request.Context(), tc, employeeID, kind, req)
		if err != nil {
			writeServiceError(c, err)
			return
		}

		if h.rdb != nil {
			if ck, ok := cacheKey.(string); ok && ck != "" {
				if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
					_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
				}
			}
		}

		response.Success(c, http.StatusCreated, resp, nil)
	}
}

func (h *Handler) GetStatus(c *gin.Context) {
	tc := tenantFromGin(c)

	resp, err := h.service.GetStatus(c.Request.Context(), tc, actorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	tc := tenantFromGin(c)
	actor := actorID(c)
	canReadAll := c.GetBool("has_read_all")

	from, to, err := parseRangeQuery(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), tc, actor, canReadAll, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) Correct(c *gin.Context) {
	tc := tenantFromGin(c)
	actor := actorID(c)
	canEditAll := c.GetBool("has_read_all")

	var req CorrectPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Correct(c.Request.Context(), tc, actor, canEditAll, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	tc := tenantFromGin(c)

	if err := h.service.Delete(c.Request.Context(), tc, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// parseRangeQuery reads from/to date filters, defaulting to the last 31 days.
func parseRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -31).Truncate(24 * time.Hour)
	to := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("From")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("To")
		}
		// inclusive end date
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}
