package rbac

import (
	"net/http"
	"strings"

	"geoshift/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	repo    Repository
}

func NewHandler(service Service, repo Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.OrganizationID = strings.TrimSpace(req.OrganizationID)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.UserID == "" || req.OrganizationID == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id, organization_id, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		zap.L().Error("rbac enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Allowed: allowed,
	}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	roles, err := h.repo.ListRoles(organizationID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	resp := make([]RoleResponse, len(roles))
	for i, role := range roles {
		perms, err := h.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			return
		}
		permStrings := make([]string, len(perms))
		for j, p := range perms {
			permStrings[j] = p.Resource + ":" + p.Action
		}
		resp[i] = RoleResponse{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: permStrings,
		}
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	resp := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	response.Success(c, http.StatusOK, resp, nil)
}
