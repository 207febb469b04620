package outofrange

import (
	"net/http"

	"geoshift/internal/shared/apperror"
	"geoshift/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	userID := c.GetString("user_id_validated")

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), organizationID, userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListPending(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	resp, err := h.service.ListPending(c.Request.Context(), organizationID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	userID := c.GetString("user_id_validated")

	resp, err := h.service.ListMine(c.Request.Context(), organizationID, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id_validated")
	id := c.Param("id")

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), organizationID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deny(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id_validated")
	id := c.Param("id")

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.Deny(c.Request.Context(), organizationID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
