package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskstream/domain/apperrors"
)

type CreateTaskRequest struct {
	Title     string `json:"title" validate:"required,notblank,max=200"`
	Category  string `json:"category" validate:"omitempty,oneof=Personal Work Study Health Other"`
	Completed bool   `json:"completed"`
}

// UpdateTaskRequest carries the mutable task fields. Nil means "leave
// untouched". id, userId and createdAt must never appear in an update
// payload; ParseUpdateTaskRequest rejects them before anything is written.
type UpdateTaskRequest struct {
	Title     *string `json:"title" validate:"omitempty,notblank,max=200"`
	Category  *string `json:"category" validate:"omitempty,oneof=Personal Work Study Health Other"`
	Completed *bool   `json:"completed"`
}

var immutableTaskFields = []string{"id", "userId", "createdAt"}

// ParseUpdateTaskRequest decodes an update payload, failing with
// ErrInvalidMutation when the payload names an immutable field.
func ParseUpdateTaskRequest(body []byte) (*UpdateTaskRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	for _, field := range immutableTaskFields {
		if _, ok := raw[field]; ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidMutation, field)
		}
	}

	var req UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

type TaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskSnapshot is one full view of a user's collection: the ordered tasks
// plus the counters derived from them. The feed always delivers whole
// snapshots, never deltas.
type TaskSnapshot struct {
	Tasks []TaskResponse `json:"tasks"`
	Stats TaskStatsDTO   `json:"stats"`
}

type TaskStatsDTO struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Today     int `json:"today"`
}
