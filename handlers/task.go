package handlers

import (
	"errors"
	"net/http"
	"strconv"

	projectRepo "taskhub/database/repository/project"
	taskRepo "taskhub/database/repository/task"
	"taskhub/middleware"
	"taskhub/models"
	"taskhub/services/task"
	"taskhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateTaskHandler handles POST /api/tasks.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var t models.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.TaskService.CreateTask(t, principal, middleware.RawToken(c))
	if err != nil {
		switch {
		case errors.Is(err, task.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, projectRepo.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project not found"})
		default:
			utils.GetLogger().Error("Failed to create task", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTaskHandler handles GET /api/tasks/:id.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.TaskService.GetTask(id)
	if err != nil {
		if errors.Is(err, taskRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		utils.GetLogger().Error("Failed to get task", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get task"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListTasksHandler handles GET /api/tasks with optional project, assignee
// and status filters.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	var filter models.TaskFilter
	if v := c.Query("project"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project filter"})
			return
		}
		filter.ProjectID = id
	}
	if v := c.Query("assignee"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee filter"})
			return
		}
		filter.AssigneeID = id
	}
	filter.Status = c.Query("status")

	tasks, err := h.TaskService.ListTasks(filter)
	if err != nil {
		utils.GetLogger().Error("Failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTaskHandler handles PATCH /api/tasks/:id.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var upd task.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.TaskService.UpdateTask(id, upd, principal, middleware.RawToken(c))
	if err != nil {
		switch {
		case errors.Is(err, taskRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, task.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Failed to update task", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTaskHandler handles DELETE /api/tasks/:id.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(id); err != nil {
		if errors.Is(err, taskRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		utils.GetLogger().Error("Failed to delete task", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// ListCommentsHandler handles GET /api/tasks/:id/comments.
func (h *TaskHandler) ListCommentsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.TaskService.ListComments(id)
	if err != nil {
		if errors.Is(err, taskRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		utils.GetLogger().Error("Failed to list comments", zap.Int64("taskID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddCommentHandler handles POST /api/tasks/:id/comments.
func (h *TaskHandler) AddCommentHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	comment, err := h.TaskService.AddComment(id, req.Text, principal)
	if err != nil {
		switch {
		case errors.Is(err, taskRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, task.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Failed to add comment", zap.Int64("taskID", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}
