package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectdesk/internal/schema"
	"projectdesk/internal/service"
)

type TaskHandler struct {
	svc    *service.TaskService
	logger *zap.Logger
}

func NewTaskHandler(svc *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

func (h *TaskHandler) Register(rg *gin.RouterGroup) {
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

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListTasks", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewTaskList(tasks))
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, err := parseID(c, "Task")
	if err != nil {
		respondError(c, h.logger, "GetTask", err)
		return
	}

	task, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetTask", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewTaskResponse(task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var payload schema.TaskPayload
	if err := bindJSON(c, &payload); err != nil {
		respondError(c, h.logger, "CreateTask", err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), payload.Record())
	if err != nil {
		respondError(c, h.logger, "CreateTask", err)
		return
	}
	c.JSON(http.StatusCreated, schema.NewTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseID(c, "Task")
	if err != nil {
		respondError(c, h.logger, "UpdateTask", err)
		return
	}

	var payload schema.TaskPayload
	if err := bindJSON(c, &payload); err != nil {
		respondError(c, h.logger, "UpdateTask", err)
		return
	}

	task, err := h.svc.Update(c.Request.Context(), id, payload.Record())
	if err != nil {
		respondError(c, h.logger, "UpdateTask", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "Task")
	if err != nil {
		respondError(c, h.logger, "DeleteTask", err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteTask", err)
		return
	}
	c.JSON(http.StatusOK, schema.StatusResponse{Status: "Task deleted"})
}
