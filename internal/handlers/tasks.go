package handlers

import (
	"errors"
	"log"
	"net/http"

	"tasknest/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

// ownerID pulls the user id that RequireSession stored in the context.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	idValue, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	idStr, ok := idValue.(string)
	if !ok {
		return uuid.Nil, false
	}
	id := uuid.FromStringOrNil(idStr)
	return id, id != uuid.Nil
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "not_authenticated",
			"message": "User not authenticated",
		})
		return
	}

	tasks, err := h.taskService.ListTasks(h.db, owner)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "not_authenticated",
			"message": "User not authenticated",
		})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request format",
		})
		return
	}

	task, err := h.taskService.CreateTask(h.db, owner, req.Title, req.Description)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "not_authenticated",
			"message": "User not authenticated",
		})
		return
	}

	taskID := uuid.FromStringOrNil(c.Param("id"))

	var patch services.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request format",
		})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, owner, taskID, patch)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "not_authenticated",
			"message": "User not authenticated",
		})
		return
	}

	taskID := uuid.FromStringOrNil(c.Param("id"))

	if err := h.taskService.DeleteTask(h.db, owner, taskID); err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Task not found",
		})
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_fields",
			"message": "Title is required",
		})
	default:
		log.Printf("task error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Internal server error",
		})
	}
}
