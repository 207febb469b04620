package shift

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"geoshift/internal/shared/apperror"
	"geoshift/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func getActorID(c *gin.Context) string {
	return c.GetString("user_id_validated")
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotencyLock frees the in-flight lock taken by the
// idempotency middleware once the request has a final outcome.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	lockKey, _ := c.Get("idempotency_lock_key")
	if lk, ok := lockKey.(string); ok && lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	cacheKey, _ := c.Get("idempotency_cache_key")
	if ck, ok := cacheKey.(string); ok && ck != "" {
		if payload, err := json.Marshal(resp); err == nil {
			_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
		}
	}
}

func (h *Handler) ClockIn(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	organizationID := c.GetString("organization_id")
	userID := getActorID(c)

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), organizationID, userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	organizationID := c.GetString("organization_id")
	userID := getActorID(c)

	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), organizationID, userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := getActorID(c)
	role := strings.ToUpper(strings.TrimSpace(c.GetString("role")))
	canReadAll := c.GetBool("has_read_all") && isPrivilegedRole(role)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	resp, total, err := h.service.GetAll(c.Request.Context(), organizationID, actorID, canReadAll, page, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) ListStale(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	resp, err := h.service.ListStale(c.Request.Context(), organizationID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Resolve(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := getActorID(c)
	shiftID := c.Param("id")

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.Resolve(c.Request.Context(), organizationID, actorID, shiftID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func isPrivilegedRole(role string) bool {
	switch role {
	case "SUPER_ADMIN", "ADMIN", "MANAGER":
		return true
	default:
		return false
	}
}
