package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectdesk/internal/schema"
	"projectdesk/internal/service"
)

type ProjectHandler struct {
	svc    *service.ProjectService
	logger *zap.Logger
}

func NewProjectHandler(svc *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, logger: logger}
}

func (h *ProjectHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/", h.Get)
	rg.POST("", h.Create)
	rg.POST("/", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PUT("/:id/", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.DELETE("/:id/", h.Delete)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListProjects", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewProjectList(projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseID(c, "Project")
	if err != nil {
		respondError(c, h.logger, "GetProject", err)
		return
	}

	project, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetProject", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewProjectResponse(project))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var payload schema.ProjectPayload
	if err := bindJSON(c, &payload); err != nil {
		respondError(c, h.logger, "CreateProject", err)
		return
	}

	project, err := h.svc.Create(c.Request.Context(), payload.Record())
	if err != nil {
		respondError(c, h.logger, "CreateProject", err)
		return
	}
	c.JSON(http.StatusCreated, schema.NewProjectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := parseID(c, "Project")
	if err != nil {
		respondError(c, h.logger, "UpdateProject", err)
		return
	}

	var payload schema.ProjectPayload
	if err := bindJSON(c, &payload); err != nil {
		respondError(c, h.logger, "UpdateProject", err)
		return
	}

	project, err := h.svc.Update(c.Request.Context(), id, payload.Record())
	if err != nil {
		respondError(c, h.logger, "UpdateProject", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "Project")
	if err != nil {
		respondError(c, h.logger, "DeleteProject", err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteProject", err)
		return
	}
	c.JSON(http.StatusOK, schema.StatusResponse{Status: "Project deleted"})
}
