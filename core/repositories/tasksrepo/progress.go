package tasksrepo

import "math"

// deriveMode selects which client workflow triggered a derivation. Both the
// checklist-replace and status-override paths run through the same transform
// so the progress/status math cannot drift between call sites.
type deriveMode int

const (
	deriveChecklistReplace deriveMode = iota + 1
	deriveStatusOverride
)

// deriveState recomputes a consistent (status, progress, checklist) triple.
//
// In checklist-replace mode the supplied checklist is the source of truth:
// progress is the rounded completion ratio (0 for an empty checklist) and
// status follows progress (0 -> Pending, 100 -> Completed, else In Progress).
//
// In status-override mode the override is applied directly. Completed
// additionally forces every checklist item done and progress to 100 so the
// invariant holds after the fact. Other overrides deliberately leave the
// checklist and progress untouched: only "done" implies checklist
// completion, not the reverse. That means an override to Pending can leave a
// fully-completed checklist in place until the next checklist write
// recomputes it.
//
// The transform is idempotent in both modes.
func deriveState(mode deriveMode, items []ChecklistItem, progress int, override Status) (Status, int, []ChecklistItem) {
	switch mode {
	case deriveChecklistReplace:
		completed := 0
		for _, item := range items {
			if item.Completed {
				completed++
			}
		}

		progress = 0
		if len(items) > 0 {
			progress = int(math.Round(100 * float64(completed) / float64(len(items))))
		}

		return statusForProgress(progress), progress, items

	case deriveStatusOverride:
		if override != StatusCompleted {
			return override, progress, items
		}

		forced := make([]ChecklistItem, len(items))
		for i, item := range items {
			item.Completed = true
			forced[i] = item
		}

		return StatusCompleted, 100, forced
	}

	return statusForProgress(progress), progress, items
}

func statusForProgress(progress int) Status {
	switch {
	case progress == 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusPending
	}
}
