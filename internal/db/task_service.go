package db

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/balkashynov/tally/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title       string
	Description *string
}

// CreateTask creates a new task
func (s *Store) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newError(ErrValidation, "title must not be empty")
	}
	if len(title) > 255 {
		return nil, newError(ErrValidation, "title must be at most 255 characters")
	}

	task := models.Task{
		Title:       title,
		Description: req.Description,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "task created", "task_id", task.ID)
	return &task, nil
}

// GetTasks retrieves every task
func (s *Store) GetTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetTaskByID retrieves a task by ID
func (s *Store) GetTaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task

	err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "No task with the id %s found.", id)
	}

	return &task, nil
}
