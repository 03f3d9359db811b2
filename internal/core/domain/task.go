package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// GenerateID creates a unique random ID.
func GenerateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// TaskType identifies the type of background task
type TaskType string

const (
	// TaskTypeIndexCorpus rebuilds the lexical index and repopulates the
	// vector index from the current corpus
	TaskTypeIndexCorpus TaskType = "index_corpus"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task represents a background job to be processed by workers
type Task struct {
	// ID is the unique identifier for this task
	ID string `json:"id"`

	// Type identifies what kind of task this is
	Type TaskType `json:"type"`

	// Payload contains task-specific data
	// For index_corpus: {"force": "true"} to rebuild even if populated
	Payload map[string]string `json:"payload"`

	// Status is the current state of the task
	Status TaskStatus `json:"status"`

	// Priority determines processing order (higher = more urgent)
	Priority int `json:"priority"`

	// Attempts is how many times this task has been attempted
	Attempts int `json:"attempts"`

	// LastError holds the most recent failure message
	LastError string `json:"last_error,omitempty"`

	// ScheduledFor allows delayed execution; zero means immediate
	ScheduledFor time.Time `json:"scheduled_for"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// maxTaskAttempts bounds redelivery of failing tasks
const maxTaskAttempts = 3

// MarkProcessing records the start of an attempt
func (t *Task) MarkProcessing() {
	now := time.Now()
	t.Status = TaskStatusProcessing
	t.Attempts++
	t.StartedAt = &now
}

// MarkCompleted records successful completion
func (t *Task) MarkCompleted() {
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
}

// MarkFailed records terminal failure
func (t *Task) MarkFailed(reason string) {
	now := time.Now()
	t.Status = TaskStatusFailed
	t.LastError = reason
	t.CompletedAt = &now
}

// CanRetry reports whether another attempt is allowed
func (t *Task) CanRetry() bool {
	return t.Attempts < maxTaskAttempts
}

// Retry re-queues the task with a backoff proportional to its attempts
func (t *Task) Retry(reason string) {
	t.Status = TaskStatusPending
	t.LastError = reason
	t.ScheduledFor = time.Now().Add(time.Duration(t.Attempts) * 30 * time.Second)
}

// NewIndexCorpusTask creates a corpus reindex task
func NewIndexCorpusTask(force bool) *Task {
	payload := map[string]string{}
	if force {
		payload["force"] = "true"
	}
	return &Task{
		ID:        GenerateID(),
		Type:      TaskTypeIndexCorpus,
		Payload:   payload,
		Status:    TaskStatusPending,
		CreatedAt: time.Now(),
	}
}
