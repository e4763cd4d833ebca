package tasksrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checklist(completed, total int) []ChecklistItem {
	items := make([]ChecklistItem, total)
	for i := range items {
		items[i] = ChecklistItem{Text: "item", Completed: i < completed}
	}
	return items
}

func TestDeriveState_ChecklistRatio(t *testing.T) {
	tests := []struct {
		name         string
		completed    int
		total        int
		wantProgress int
		wantStatus   Status
	}{
		{"empty checklist", 0, 0, 0, StatusPending},
		{"none done", 0, 4, 0, StatusPending},
		{"one of three rounds down", 1, 3, 33, StatusInProgress},
		{"two of three rounds up", 2, 3, 67, StatusInProgress},
		{"half", 1, 2, 50, StatusInProgress},
		{"all done", 3, 3, 100, StatusCompleted},
		{"one of many", 1, 200, 1, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, progress, items := deriveState(deriveChecklistReplace, checklist(tt.completed, tt.total), 55, "")

			assert.Equal(t, tt.wantProgress, progress)
			assert.Equal(t, tt.wantStatus, status)
			assert.Len(t, items, tt.total)
		})
	}
}

func TestDeriveState_Idempotent(t *testing.T) {
	items := checklist(2, 3)

	status1, progress1, items1 := deriveState(deriveChecklistReplace, items, 0, "")
	status2, progress2, items2 := deriveState(deriveChecklistReplace, items1, progress1, "")

	assert.Equal(t, status1, status2)
	assert.Equal(t, progress1, progress2)
	assert.Equal(t, items1, items2)
}

func TestDeriveState_CompletedOverrideForcesChecklist(t *testing.T) {
	items := checklist(1, 3)

	status, progress, forced := deriveState(deriveStatusOverride, items, 33, StatusCompleted)

	assert.Equal(t, StatusCompleted, status)
	assert.Equal(t, 100, progress)
	require.Len(t, forced, 3)
	for _, item := range forced {
		assert.True(t, item.Completed)
	}

	// The input checklist must not be mutated in place.
	assert.False(t, items[1].Completed)
	assert.False(t, items[2].Completed)
}

func TestDeriveState_NonCompletedOverridePassesThrough(t *testing.T) {
	items := checklist(3, 3)

	// Overriding away from Completed leaves checklist and progress alone.
	// Only "done" implies checklist completion, not the reverse.
	status, progress, out := deriveState(deriveStatusOverride, items, 100, StatusPending)

	assert.Equal(t, StatusPending, status)
	assert.Equal(t, 100, progress)
	assert.Equal(t, items, out)

	status, progress, out = deriveState(deriveStatusOverride, checklist(1, 4), 25, StatusInProgress)
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, 25, progress)
	assert.Len(t, out, 4)
}

func TestStatusForProgress(t *testing.T) {
	assert.Equal(t, StatusPending, statusForProgress(0))
	assert.Equal(t, StatusInProgress, statusForProgress(1))
	assert.Equal(t, StatusInProgress, statusForProgress(99))
	assert.Equal(t, StatusCompleted, statusForProgress(100))
}
