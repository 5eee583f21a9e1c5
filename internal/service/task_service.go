package service

import (
	"context"
	"log"

	"taskhive-be/internal/cache"
	"taskhive-be/internal/entities"
	"taskhive-be/internal/models"
	"taskhive-be/internal/realtime"
	"taskhive-be/internal/repository"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	Create(ctx context.Context, listID string, req *models.CreateTaskRequest) (*entities.Task, error)
	Update(ctx context.Context, listID, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, listID, taskID string) error
}

type taskService struct {
	taskRepo    repository.TaskRepository
	listService ListService
	cache       cache.Cache
	broadcaster Broadcaster
}

// NewTaskService creates a new task service. Task mutations are announced
// to the list's room through the list service's enriched view. The cache
// may be nil.
func NewTaskService(taskRepo repository.TaskRepository, listService ListService, cacheClient cache.Cache, broadcaster Broadcaster) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		listService: listService,
		cache:       cacheClient,
		broadcaster: broadcaster,
	}
}

// Create appends a task to the end of the list's collection
func (s *taskService) Create(ctx context.Context, listID string, req *models.CreateTaskRequest) (*entities.Task, error) {
	status := req.Status
	if status == "" {
		status = entities.StatusToDo
	}
	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityLow
	}

	task, err := s.taskRepo.Create(ctx, listID, req.Name, status, priority)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, listID)
	return task, nil
}

// Update applies the provided fields to a task
func (s *taskService) Update(ctx context.Context, listID, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.Update(ctx, listID, taskID, req.Name, req.Status, req.Priority)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, listID)
	return task, nil
}

// Delete removes a task from its list
func (s *taskService) Delete(ctx context.Context, listID, taskID string) error {
	if err := s.taskRepo.Delete(ctx, listID, taskID); err != nil {
		return err
	}

	s.announce(ctx, listID)
	return nil
}

// announce re-reads the enriched list after a committed task write and
// fans the canonical "list changed" event out to the list's room
func (s *taskService) announce(ctx context.Context, listID string) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, listCacheKey(listID)); err != nil {
			log.Printf("Warning: failed to invalidate list cache %s: %v", listID, err)
		}
	}

	view, err := s.listService.Get(ctx, listID)
	if err != nil {
		// The write succeeded; a failed broadcast read never rolls it back
		return
	}
	s.broadcaster.ToList(listID, realtime.EventListUpdated, view)
}
