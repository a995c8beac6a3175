package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ternarybob/applytrack/internal/common"
)

var (
	rescheduleHour   int
	rescheduleMinute int
	remindWatch      bool
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Move every follow-up reminder to a new time of day",
	Args:  cobra.NoArgs,
	RunE:  runReschedule,
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Deliver due follow-up reminders and list pending ones",
	Long:  `Delivers reminders that are due now. With --watch, keeps running and delivers on the configured dispatch schedule.`,
	Args:  cobra.NoArgs,
	RunE:  runRemind,
}

var remindTapCmd = &cobra.Command{
	Use:   "tap [notification-id]",
	Short: "Open the record behind a delivered reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindTap,
}

func init() {
	rescheduleCmd.Flags().IntVar(&rescheduleHour, "hour", 9, "Hour of day (0-23)")
	rescheduleCmd.Flags().IntVar(&rescheduleMinute, "minute", 0, "Minute of hour (0-59)")

	remindCmd.Flags().BoolVarP(&remindWatch, "watch", "w", false, "Keep running and deliver reminders on schedule")
	remindCmd.AddCommand(remindTapCmd)
}

func runReschedule(cmd *cobra.Command, args []string) error {
	result, err := application.Tracker.RescheduleAllNotifications(cmd.Context(), rescheduleHour, rescheduleMinute)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %d reminder(s) to %02d:%02d, skipped %d record(s)\n",
		result.Rescheduled, rescheduleHour, rescheduleMinute, result.Skipped)
	fmt.Fprintln(cmd.OutOrStdout(), "Set notifications.hour and notifications.minute in config to keep this time for new records")
	return nil
}

func runRemind(cmd *cobra.Command, args []string) error {
	svc := application.NotificationService
	if svc == nil {
		return fmt.Errorf("notifications are disabled in configuration")
	}

	delivered, err := svc.DispatchDue(cmd.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("Some reminders could not be delivered")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Delivered %d reminder(s)\n", delivered)

	pending, err := svc.Pending(cmd.Context())
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NOTIFICATION\tRECORD\tFIRES\tTITLE")
		for _, r := range pending {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.NotificationID, shortID(r.RecordID), r.FireAt.Local().Format("2006-01-02 15:04"), r.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !remindWatch {
		return nil
	}

	common.PrintBanner(config, logger)
	if err := application.StartReminderDispatcher(); err != nil {
		return err
	}

	logger.Info().Str("schedule", config.Notifications.DispatchSchedule).Msg("Watching for due reminders - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("Interrupt signal received")
	case <-cmd.Context().Done():
	}
	return nil
}

func runRemindTap(cmd *cobra.Command, args []string) error {
	svc := application.NotificationService
	if svc == nil {
		return fmt.Errorf("notifications are disabled in configuration")
	}

	id, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid notification id %q: %w", args[0], err)
	}
	return svc.HandleTap(cmd.Context(), int32(id))
}
