package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		status       TaskStatus
		expectedDate *time.Time
		want         bool
	}{
		{"pending past date", TaskStatusPending, datePtr(yesterday), true},
		{"assigned past date", TaskStatusAssigned, datePtr(yesterday), true},
		{"pending due today is not overdue", TaskStatusPending, datePtr(today), false},
		{"pending future date", TaskStatusPending, datePtr(tomorrow), false},
		{"pending without date", TaskStatusPending, nil, false},
		{"assigned without date", TaskStatusAssigned, nil, false},
		{"completed past date", TaskStatusCompleted, datePtr(yesterday), false},
		{"canceled past date", TaskStatusCanceled, datePtr(yesterday), false},
		{"completed without date", TaskStatusCompleted, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := InventoryTask{
				Status:       tt.status,
				ExpectedDate: tt.expectedDate,
			}
			assert.Equal(t, tt.want, task.Overdue(now))
		})
	}
}

func TestOverdueIgnoresTimeOfDay(t *testing.T) {
	// Expected date stored with a late time component on the previous day
	// still counts as overdue; the comparison is date-only.
	expected := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)

	task := InventoryTask{
		Status:       TaskStatusPending,
		ExpectedDate: &expected,
	}
	assert.True(t, task.Overdue(now))
}

func TestTaskStatusTransitions(t *testing.T) {
	assert.True(t, TaskStatusPending.CanTransition(TaskStatusAssigned))
	assert.True(t, TaskStatusPending.CanTransition(TaskStatusCompleted))
	assert.True(t, TaskStatusPending.CanTransition(TaskStatusCanceled))
	assert.True(t, TaskStatusAssigned.CanTransition(TaskStatusCompleted))
	assert.True(t, TaskStatusAssigned.CanTransition(TaskStatusCanceled))

	assert.False(t, TaskStatusAssigned.CanTransition(TaskStatusPending))
	assert.False(t, TaskStatusCanceled.CanTransition(TaskStatusAssigned))

	for _, terminal := range []TaskStatus{TaskStatusCompleted, TaskStatusCanceled} {
		assert.True(t, terminal.Terminal())
		for _, target := range []TaskStatus{TaskStatusPending, TaskStatusAssigned, TaskStatusCompleted, TaskStatusCanceled} {
			assert.False(t, terminal.CanTransition(target), "%s -> %s", terminal, target)
		}
	}
}

func TestTaskRefString(t *testing.T) {
	docRef := TaskRef{Source: TaskSourceDocument, NativeID: 42}
	assert.Equal(t, "42", docRef.String())

	overseasRef := TaskRef{Source: TaskSourceOverseas, NativeID: 42}
	assert.Equal(t, "OS-42", overseasRef.String())
}

func TestParseTaskRef(t *testing.T) {
	ref, err := ParseTaskRef("123")
	require.NoError(t, err)
	assert.Equal(t, TaskRef{Source: TaskSourceDocument, NativeID: 123}, ref)

	ref, err = ParseTaskRef("OS-45")
	require.NoError(t, err)
	assert.Equal(t, TaskRef{Source: TaskSourceOverseas, NativeID: 45}, ref)

	for _, invalid := range []string{"", "abc", "OS-", "OS-abc", "0", "OS-0", "-5"} {
		_, err := ParseTaskRef(invalid)
		assert.ErrorIs(t, err, ErrInvalidTaskRef, "input %q", invalid)
	}
}

func TestParseTaskRefRoundTrip(t *testing.T) {
	refs := []TaskRef{
		{Source: TaskSourceDocument, NativeID: 1},
		{Source: TaskSourceOverseas, NativeID: 9001},
	}

	for _, ref := range refs {
		parsed, err := ParseTaskRef(ref.String())
		require.NoError(t, err)
		assert.Equal(t, ref, parsed)
	}
}
