package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

var userCounter atomic.Int64

// Day is the reference date fixtures place segments on
var Day = time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)

// At returns Day at the given hour and minute
func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// User options
type UserOption func(*db.CreateUserRequest)

func AsSuperuser() UserOption {
	return func(r *db.CreateUserRequest) {
		r.Superuser = true
	}
}

func WithFullName(name string) UserOption {
	return func(r *db.CreateUserRequest) {
		r.FullName = name
	}
}

// CreateUser stores a user with a unique email and returns its caller and token
func CreateUser(t *testing.T, store *db.Store, opts ...UserOption) (db.Caller, string) {
	t.Helper()
	req := db.CreateUserRequest{
		Email: fmt.Sprintf("worker%d@example.com", userCounter.Add(1)),
	}
	for _, opt := range opts {
		opt(&req)
	}

	user, token, err := store.CreateUser(context.Background(), req)
	require.NoError(t, err)
	return db.Caller{UserID: user.ID, Email: user.Email, Superuser: user.IsSuperuser}, token
}

// CreateTask stores a task with the given title
func CreateTask(t *testing.T, store *db.Store, title string) *models.Task {
	t.Helper()
	task, err := store.CreateTask(context.Background(), db.CreateTaskRequest{Title: title})
	require.NoError(t, err)
	return task
}

// Segment options
type SegmentOption func(*db.SegmentInput)

func WithDescription(d string) SegmentOption {
	return func(s *db.SegmentInput) {
		s.Description = &d
	}
}

func WithNotes(n string) SegmentOption {
	return func(s *db.SegmentInput) {
		s.Notes = &n
	}
}

// Segment builds a segment input that starts at start and lasts the given minutes
func Segment(start time.Time, minutes int, opts ...SegmentOption) db.SegmentInput {
	s := db.SegmentInput{
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// CreateWorkLog stores a worklog for caller against task
func CreateWorkLog(t *testing.T, store *db.Store, caller db.Caller, task *models.Task, segments ...db.SegmentInput) *models.WorkLog {
	t.Helper()
	wl, err := store.CreateWorkLog(context.Background(), caller, db.CreateWorkLogRequest{
		TaskID:   task.ID,
		Segments: segments,
	})
	require.NoError(t, err)
	return wl
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
