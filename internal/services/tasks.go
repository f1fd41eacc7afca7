package services

import (
	"strings"
	"time"

	"tasknest/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type TaskService interface {
	ListTasks(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error)
	CreateTask(db *gorm.DB, ownerID uuid.UUID, title, description string) (models.Task, error)
	UpdateTask(db *gorm.DB, ownerID, taskID uuid.UUID, patch TaskPatch) (models.Task, error)
	DeleteTask(db *gorm.DB, ownerID, taskID uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	tasks := []models.Task{}
	err := db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, ownerID uuid.UUID, title, description string) (models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return models.Task{}, ErrMissingFields
	}

	now := time.Now()
	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies the present patch fields in a single conditional UPDATE
// filtered on both task id and owner id, so a task owned by someone else is
// indistinguishable from one that does not exist.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, ownerID, taskID uuid.UUID, patch TaskPatch) (models.Task, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return models.Task{}, ErrMissingFields
		}
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	result := db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		Updates(updates)
	if result.Error != nil {
		return models.Task{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	var task models.Task
	if err := db.Where("id = ? AND user_id = ?", taskID, ownerID).First(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, ownerID, taskID uuid.UUID) error {
	result := db.Where("id = ? AND user_id = ?", taskID, ownerID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
