// Package ordering computes dense task positions for drag-and-drop
// reorders. It is a pure planning core: callers load the affected board's
// tasks, hand over the requested moves, and persist the returned updates in
// one transaction. The package manages no state and performs no I/O,
// keeping it reusable and trivially testable.
package ordering

import (
	"sort"

	"github.com/taskfabric/taskfabric/internal/domain/task"
)

// Move is one drag-and-drop request: place TaskID at Index within the
// Status column. Index is clamped to the column's bounds.
type Move struct {
	TaskID string
	Status task.Status
	Index  int
}

// Update is one planned outcome: the task's final status and position.
// Persisting writes status before position.
type Update struct {
	TaskID   string
	Status   task.Status
	Position int
}

// Plan computes position updates for a board. tasks must be every task on
// the board, in ascending position order within each status. Only
// partitions touched by the moves (destinations and the movers' source
// columns) are renumbered; each comes out dense, 0..n-1, with no gaps or
// duplicates. Updates are emitted only for tasks whose (status, position)
// actually changed.
//
// Duplicate or conflicting indices are resolved by processing moves in
// order: each move splices into the column as it stands after the previous
// move. Several moves naming the same task collapse to the last one, so a
// task ends up in exactly one slot. Moves naming tasks that are not on the
// board are ignored.
//
// Plan assumes it runs inside the caller's transaction boundary; two
// concurrent reorders on one board still race as last-writer-wins, but a
// winning write always leaves every touched partition dense.
func Plan(tasks []task.Task, moves []Move) []Update {
	// A task may appear in several moves; only its last move counts.
	// Splicing a task once per move would seat it at two positions while
	// persistence writes a single row, leaving a hole in the column.
	last := make(map[string]int, len(moves))
	for i, m := range moves {
		last[m.TaskID] = i
	}
	if len(last) != len(moves) {
		deduped := make([]Move, 0, len(last))
		for i, m := range moves {
			if last[m.TaskID] == i {
				deduped = append(deduped, m)
			}
		}
		moves = deduped
	}

	byID := make(map[string]*task.Task, len(tasks))
	columns := make(map[task.Status][]string)
	for i := range tasks {
		t := &tasks[i]
		byID[t.ID] = t
		columns[t.Status] = append(columns[t.Status], t.ID)
	}

	moving := make(map[string]bool, len(moves))
	affected := make(map[task.Status]bool)
	for _, m := range moves {
		t, ok := byID[m.TaskID]
		if !ok {
			continue
		}
		moving[m.TaskID] = true
		affected[t.Status] = true
		affected[m.Status] = true
	}

	// Pull every moving task out of its current column.
	for status := range affected {
		kept := columns[status][:0]
		for _, id := range columns[status] {
			if !moving[id] {
				kept = append(kept, id)
			}
		}
		columns[status] = kept
	}

	// Splice arrivals in move-list order.
	for _, m := range moves {
		if _, ok := byID[m.TaskID]; !ok {
			continue
		}
		col := columns[m.Status]
		idx := m.Index
		if idx < 0 {
			idx = 0
		}
		if idx > len(col) {
			idx = len(col)
		}
		col = append(col, "")
		copy(col[idx+1:], col[idx:])
		col[idx] = m.TaskID
		columns[m.Status] = col
	}

	// Renumber touched partitions and collect actual changes.
	var updates []Update
	for status := range affected {
		for pos, id := range columns[status] {
			t := byID[id]
			if t.Status == status && t.Position == pos {
				continue
			}
			updates = append(updates, Update{TaskID: id, Status: status, Position: pos})
		}
	}

	// Deterministic output order regardless of map iteration.
	sort.Slice(updates, func(i, j int) bool {
		if updates[i].Status != updates[j].Status {
			return updates[i].Status < updates[j].Status
		}
		return updates[i].Position < updates[j].Position
	})
	return updates
}
