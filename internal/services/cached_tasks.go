package services

import (
	"fmt"
	"time"

	"tasknest/backend/internal/cache"
	"tasknest/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const listCacheTTL = 15 * time.Minute

// CachedTaskService wraps a TaskService and keeps each owner's task list in
// Redis. Every write invalidates that owner's entry; cache failures fall
// through to the database.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("user_tasks:%s", ownerID.String())
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	key := listCacheKey(ownerID)

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.ListTasks(db, ownerID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, tasks, listCacheTTL)

	return tasks, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, ownerID uuid.UUID, title, description string) (models.Task, error) {
	task, err := s.taskService.CreateTask(db, ownerID, title, description)
	if err != nil {
		return task, err
	}

	s.cache.Delete(listCacheKey(ownerID))

	return task, nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, ownerID, taskID uuid.UUID, patch TaskPatch) (models.Task, error) {
	task, err := s.taskService.UpdateTask(db, ownerID, taskID, patch)
	if err != nil {
		return task, err
	}

	s.cache.Delete(listCacheKey(ownerID))

	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, ownerID, taskID uuid.UUID) error {
	if err := s.taskService.DeleteTask(db, ownerID, taskID); err != nil {
		return err
	}

	s.cache.Delete(listCacheKey(ownerID))

	return nil
}

func (s *CachedTaskService) GetCacheStats() map[string]interface{} {
	return s.cache.Stats()
}
