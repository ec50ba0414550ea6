package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentmatch_backend/internal/middleware"
	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/services"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/pkg/apperrors"
)

// AdminHandler exposes the review and provisioning surface. All routes
// require a platform-admin user type; tenant admins manage their own tenant
// elsewhere and never see these routes.
type AdminHandler struct {
	*BaseHandler
	authService         services.AuthService
	registrationService services.RegistrationService
	tenantService       services.TenantService
}

func NewAdminHandler(
	base *BaseHandler,
	authService services.AuthService,
	registrationService services.RegistrationService,
	tenantService services.TenantService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		authService:         authService,
		registrationService: registrationService,
		tenantService:       tenantService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.authService))
	admin.Use(middleware.RequireUserTypes(
		models.UserTypeSuperAdmin,
		models.UserTypeTemplateDesigner,
	))
	{
		admin.POST("/users", h.CreateUser)

		admin.GET("/registration-requests", h.ListRegistrationRequests)
		admin.POST("/registration-requests/:id/approve", h.ApproveRegistrationRequest)
		admin.POST("/registration-requests/:id/reject", h.RejectRegistrationRequest)
		admin.PUT("/registration-requests/:id/notes", h.UpdateRegistrationNotes)

		admin.POST("/tenants", h.CreateTenant)
		admin.GET("/tenants", h.ListTenants)
		admin.GET("/tenants/:id", h.GetTenant)
		admin.PUT("/tenants/:id/status", h.UpdateTenantStatus)
	}
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	account, err := h.authService.AdminCreateUser(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountDTO(account))
}

func (h *AdminHandler) ListRegistrationRequests(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	status := models.RegistrationStatus(c.Query("status"))

	db := h.GetDB(c)

	requests, err := h.registrationService.List(db, status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.RegistrationRequestDTO, 0, len(requests))
	for i := range requests {
		out = append(out, dto.NewRegistrationRequestDTO(&requests[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"requests":  out,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AdminHandler) ApproveRegistrationRequest(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Tenant assignment and notes are optional; an empty body approves as-is.
	var req dto.ApproveRegistrationRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reviewer, ok := middleware.CurrentAccount(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrInvalidAuthHeader)
		return
	}

	db := h.GetDB(c)

	request, err := h.registrationService.Approve(db, id, reviewer.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRegistrationRequestDTO(request))
}

func (h *AdminHandler) RejectRegistrationRequest(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.RejectRegistrationRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reviewer, ok := middleware.CurrentAccount(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrInvalidAuthHeader)
		return
	}

	db := h.GetDB(c)

	request, err := h.registrationService.Reject(db, id, reviewer.ID, req.Notes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRegistrationRequestDTO(request))
}

func (h *AdminHandler) UpdateRegistrationNotes(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateReviewNotesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	request, err := h.registrationService.UpdateNotes(db, id, req.Notes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRegistrationRequestDTO(request))
}

func (h *AdminHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	tenant, err := h.tenantService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

func (h *AdminHandler) ListTenants(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	db := h.GetDB(c)

	tenants, err := h.tenantService.List(db, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenants":   tenants,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AdminHandler) GetTenant(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	tenant, err := h.tenantService.Get(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *AdminHandler) UpdateTenantStatus(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateTenantStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	tenant, err := h.tenantService.UpdateStatus(db, id, models.TenantStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}
