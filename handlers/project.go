package handlers

import (
	"errors"
	"net/http"
	"strconv"

	projectRepo "taskhub/database/repository/project"
	"taskhub/middleware"
	"taskhub/models"
	"taskhub/services/task"
	"taskhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler exposes the work-tracking endpoints (projects, tasks,
// comments).
type TaskHandler struct {
	TaskService task.TaskService
}

// NewTaskHandler creates a TaskHandler backed by the given service.
func NewTaskHandler(svc task.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: svc}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// CreateProjectHandler handles POST /api/projects.
func (h *TaskHandler) CreateProjectHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.TaskService.CreateProject(project, principal)
	if err != nil {
		if errors.Is(err, task.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProjectHandler handles GET /api/projects/:id.
func (h *TaskHandler) GetProjectHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.TaskService.GetProject(id)
	if err != nil {
		if errors.Is(err, projectRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		utils.GetLogger().Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListProjectsHandler handles GET /api/projects.
func (h *TaskHandler) ListProjectsHandler(c *gin.Context) {
	projects, err := h.TaskService.ListProjects()
	if err != nil {
		utils.GetLogger().Error("Failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// UpdateProjectHandler handles PATCH /api/projects/:id.
func (h *TaskHandler) UpdateProjectHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var upd task.ProjectUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	project, err := h.TaskService.UpdateProject(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, projectRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		case errors.Is(err, task.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Failed to update project", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		}
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProjectHandler handles DELETE /api/projects/:id.
func (h *TaskHandler) DeleteProjectHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.TaskService.DeleteProject(id); err != nil {
		if errors.Is(err, projectRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		utils.GetLogger().Error("Failed to delete project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// ProjectStatisticsHandler handles GET /api/projects/:id/statistics.
func (h *TaskHandler) ProjectStatisticsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.TaskService.ProjectStatistics(id)
	if err != nil {
		if errors.Is(err, projectRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		utils.GetLogger().Error("Failed to compute project statistics", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
