package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TaskType string

const (
	TaskTypeInbound  TaskType = "inbound"
	TaskTypeOutbound TaskType = "outbound"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	return t == TaskTypeInbound || t == TaskTypeOutbound
}

type TaskSource string

const (
	TaskSourceDocument TaskSource = "document"
	TaskSourceOverseas TaskSource = "overseas"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCanceled  TaskStatus = "canceled"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusCompleted, TaskStatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCanceled
}

// statusTransitions is the single source of truth for the task lifecycle:
// pending -> assigned -> completed, with canceled reachable from either
// non-terminal state.
var statusTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:  {TaskStatusAssigned, TaskStatusCompleted, TaskStatusCanceled},
	TaskStatusAssigned: {TaskStatusCompleted, TaskStatusCanceled},
}

// CanTransition reports whether the lifecycle permits moving from s to
// target. Terminal states permit nothing.
func (s TaskStatus) CanTransition(target TaskStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// overseasRefPrefix keeps synthesized overseas identifiers out of the
// document identifier space at the API boundary.
const overseasRefPrefix = "OS-"

// ErrInvalidTaskRef is returned when an identifier string cannot be decoded.
var ErrInvalidTaskRef = errors.New("invalid task identifier")

// TaskRef is the composite key of a task: which source table it derives
// from plus the row id in that table. The string encoding is used only at
// the external interface boundary.
type TaskRef struct {
	Source   TaskSource
	NativeID uint64
}

func (r TaskRef) String() string {
	if r.Source == TaskSourceOverseas {
		return overseasRefPrefix + strconv.FormatUint(r.NativeID, 10)
	}
	return strconv.FormatUint(r.NativeID, 10)
}

// ParseTaskRef decodes the boundary string form of a task identifier.
func ParseTaskRef(s string) (TaskRef, error) {
	source := TaskSourceDocument
	if rest, ok := strings.CutPrefix(s, overseasRefPrefix); ok {
		source = TaskSourceOverseas
		s = rest
	}

	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return TaskRef{}, fmt.Errorf("%w: %q", ErrInvalidTaskRef, s)
	}

	return TaskRef{Source: source, NativeID: id}, nil
}

// TaskItem is one line of goods to move, present only on document-sourced
// tasks.
type TaskItem struct {
	Name     string          `json:"name"`
	Spec     string          `json:"spec,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit,omitempty"`
}

// InventoryTask is the unified view over both source record types. It is
// derived at read time and never persisted; mutations go back through the
// record store against the underlying row.
type InventoryTask struct {
	Ref          TaskRef
	Type         TaskType
	Status       TaskStatus
	ExpectedDate *time.Time
	AssigneeID   *uint64
	AssignerID   *uint64
	CompletedAt  *time.Time
	CompleterID  *uint64

	// Document-sourced fields
	DocumentNo string
	Items      []TaskItem

	// Overseas-sourced fields
	Content string

	// CompanyName is the denormalized counterparty display identity,
	// resolved from the originating record at read time.
	CompanyName string
}

// Overdue reports whether the task's expected date has passed without the
// task reaching a terminal state. The comparison is date-only: a task is
// not overdue on its expected day. Recomputed on every read, never stored.
func (t *InventoryTask) Overdue(now time.Time) bool {
	if t.ExpectedDate == nil {
		return false
	}
	if t.Status != TaskStatusPending && t.Status != TaskStatusAssigned {
		return false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.ExpectedDate.Before(today)
}
