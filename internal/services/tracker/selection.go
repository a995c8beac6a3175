package tracker

import (
	"context"
	"errors"
	"fmt"
)

// EnterSelectionMode starts multi-select with id as the only selected record
func (c *Controller) EnterSelectionMode(id string) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.IsSelectionMode = true
		s.SelectedIDs = map[string]struct{}{id: {}}
	})
}

// ToggleSelection adds or removes id. Removing the last id leaves selection mode.
// Outside selection mode this does nothing.
func (c *Controller) ToggleSelection(id string) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.State().IsSelectionMode {
		return
	}

	c.mutate(func(s *ApplicationViewState) {
		if _, ok := s.SelectedIDs[id]; ok {
			delete(s.SelectedIDs, id)
		} else {
			s.SelectedIDs[id] = struct{}{}
		}
		if len(s.SelectedIDs) == 0 {
			s.IsSelectionMode = false
		}
	})
}

// SelectAll selects every record currently visible in the filtered list. An empty list
// leaves selection mode. Outside selection mode this does nothing.
func (c *Controller) SelectAll() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.State().IsSelectionMode {
		return
	}

	c.mutate(func(s *ApplicationViewState) {
		s.SelectedIDs = make(map[string]struct{}, len(s.FilteredRecords))
		for _, r := range s.FilteredRecords {
			s.SelectedIDs[r.ID] = struct{}{}
		}
		if len(s.SelectedIDs) == 0 {
			s.IsSelectionMode = false
		}
	})
}

// ExitSelectionMode clears the selection
func (c *Controller) ExitSelectionMode() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.IsSelectionMode = false
		s.SelectedIDs = map[string]struct{}{}
	})
}

// DeleteSelected removes every selected record, cancelling each reminder first, then
// reloads and leaves selection mode in a single terminal snapshot. Records that fail to
// delete stay selected and the snapshot carries the error.
func (c *Controller) DeleteSelected(ctx context.Context) (int, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	ids := c.State().SelectedIDList()
	if len(ids) == 0 {
		c.mutate(func(s *ApplicationViewState) {
			s.IsSelectionMode = false
			s.SelectedIDs = map[string]struct{}{}
		})
		return 0, nil
	}

	c.emitLoading()

	deleted := 0
	failed := make(map[string]struct{})
	var errs []error
	for _, id := range ids {
		c.cancelFollowUp(ctx, id)

		ok, err := c.storage.Delete(ctx, id)
		if err != nil {
			c.logger.Error().Err(err).Str("record_id", id).Msg("Failed to delete selected record")
			failed[id] = struct{}{}
			errs = append(errs, err)
			continue
		}
		if ok {
			deleted++
		}
	}

	next, err := c.reloaded(ctx, func(s *ApplicationViewState) {
		s.SelectedIDs = failed
		s.IsSelectionMode = len(failed) > 0
	})

	var writeErr error
	if len(errs) > 0 {
		writeErr = fmt.Errorf("%w: %w", ErrStoreWrite, errors.Join(errs...))
		next.ErrorMessage = fmt.Sprintf("Failed to delete %d of %d jobs: %v", len(failed), len(ids), errors.Join(errs...))
	}
	c.emit(next)

	c.logger.Info().Int("deleted", deleted).Int("failed", len(failed)).Msg("Deleted selected records")
	return deleted, errors.Join(writeErr, err)
}
