package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectdesk/internal/schema"
	"projectdesk/internal/service"
)

type EmployeeHandler struct {
	svc    *service.EmployeeService
	logger *zap.Logger
}

func NewEmployeeHandler(svc *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, logger: logger}
}

func (h *EmployeeHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/", h.Get)
	rg.POST("", h.Create)
	rg.POST("/", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PUT("/:id/", h.Update)
	rg.PATCH("/:id", h.Patch)
	rg.PATCH("/:id/", h.Patch)
	rg.DELETE("/:id", h.Delete)
	rg.DELETE("/:id/", h.Delete)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListEmployees", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewEmployeeList(employees))
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := parseID(c, "Employee")
	if err != nil {
		respondError(c, h.logger, "GetEmployee", err)
		return
	}

	employee, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetEmployee", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewEmployeeResponse(employee))
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var payload schema.EmployeePayload
	if err := bindJSON(c, &payload); err != nil {
		respondError(c, h.logger, "CreateEmployee", err)
		return
	}

	employee, err := h.svc.Create(c.Request.Context(), payload.Record())
	if err != nil {
		respondError(c, h.logger, "CreateEmployee", err)
		return
	}
	c.JSON(http.StatusCreated, schema.NewEmployeeResponse(employee))
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := parseID(c, "Employee")
	if err != nil {
		respondError(c, h.logger, "UpdateEmployee", err)
		return
	}

	var payload schema.EmployeePayload
	if err := bindJSON(c, &payload); err != nil {
		respondError(c, h.logger, "UpdateEmployee", err)
		return
	}

	employee, err := h.svc.Update(c.Request.Context(), id, payload.Record())
	if err != nil {
		respondError(c, h.logger, "UpdateEmployee", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewEmployeeResponse(employee))
}

// Patch merges the provided fields over the stored employee.
func (h *EmployeeHandler) Patch(c *gin.Context) {
	id, err := parseID(c, "Employee")
	if err != nil {
		respondError(c, h.logger, "PatchEmployee", err)
		return
	}

	var patch schema.EmployeePatch
	if err := bindJSON(c, &patch); err != nil {
		respondError(c, h.logger, "PatchEmployee", err)
		return
	}

	employee, err := h.svc.Patch(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, "PatchEmployee", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewEmployeeResponse(employee))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "Employee")
	if err != nil {
		respondError(c, h.logger, "DeleteEmployee", err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteEmployee", err)
		return
	}
	c.JSON(http.StatusOK, schema.StatusResponse{Status: "Employee deleted"})
}
