package tracker

import (
	"context"
	"fmt"
)

// RescheduleResult counts the outcome of RescheduleAllNotifications
type RescheduleResult struct {
	Rescheduled int
	Skipped     int
}

// RescheduleAllNotifications moves every follow-up reminder to hour:minute. Records without a
// follow-up date, or whose reminder would no longer fire in the future, are counted as skipped.
func (c *Controller) RescheduleAllNotifications(ctx context.Context, hour, minute int) (RescheduleResult, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return RescheduleResult{}, fmt.Errorf("invalid reminder time %02d:%02d", hour, minute)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.reminderHour = hour
	c.reminderMinute = minute

	var result RescheduleResult
	for _, r := range c.State().AllRecords {
		if r.FollowUpDate == "" {
			result.Skipped++
			continue
		}

		c.cancelFollowUp(ctx, r.ID)
		if c.scheduleFollowUp(ctx, r) {
			result.Rescheduled++
		} else {
			result.Skipped++
		}
	}

	c.logger.Info().
		Int("rescheduled", result.Rescheduled).
		Int("skipped", result.Skipped).
		Str("time", fmt.Sprintf("%02d:%02d", hour, minute)).
		Msg("Rescheduled follow-up reminders")
	return result, nil
}
