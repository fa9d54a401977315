package jobs

import (
	"context"
	"time"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/realtime"
)

// ScanAppointments is the recurring reminder pass. It loads every
// in-progress request with a scheduled appointment and, for each configured
// lead window, emits one reminder to the requester and the accepted
// volunteer when the appointment falls inside the window's tolerance band.
func (jr *JobRunner) ScanAppointments() {
	jr.runWithRecovery("ScanAppointments", func() {
		ctx := context.Background()

		appts, err := jr.requests.ListUpcomingAppointments(ctx)
		if err != nil {
			logger.Error("Failed to load upcoming appointments", "error", err)
			return
		}

		tolerance := time.Duration(jr.config.Scheduler.ToleranceSeconds) * time.Second
		now := jr.now()

		count := 0
		for _, appt := range appts {
			for _, hours := range jr.config.Scheduler.WindowsHours {
				window := time.Duration(hours) * time.Hour
				if jr.remind(ctx, appt, window, tolerance, now) {
					count++
				}
			}
		}
		if count > 0 {
			logger.Info("Emitted appointment reminders", "count", count)
		}
	})
}

// remind emits at most one reminder per (request, window) pair for the
// process lifetime. The tolerance band is sized to the scan cadence so an
// appointment cannot slip between two passes.
func (jr *JobRunner) remind(ctx context.Context, appt domain.UpcomingAppointment, window, tolerance time.Duration, now time.Time) bool {
	delta := appt.AppointmentTime.Sub(now)
	if delta < 0 {
		delta = -delta
	}
	if delta <= window-tolerance || delta >= window+tolerance {
		return false
	}
	if !jr.claim(ReminderKey{RequestID: appt.RequestID, Window: window}) {
		return false
	}

	ev := realtime.Reminder{RequestID: appt.RequestID, InMs: window.Milliseconds()}
	jr.hub.Publish(realtime.UserChannel(appt.RequesterID), ev)
	jr.sendReminderMail(ctx, appt.RequesterID, appt)
	if appt.VolunteerID != nil {
		jr.hub.Publish(realtime.UserChannel(*appt.VolunteerID), ev)
		jr.sendReminderMail(ctx, *appt.VolunteerID, appt)
	}

	logger.Debug("Reminder emitted",
		"request_id", appt.RequestID,
		"window", window.String(),
		"appointment_time", appt.AppointmentTime)
	return true
}

func (jr *JobRunner) sendReminderMail(ctx context.Context, userID int32, appt domain.UpcomingAppointment) {
	if jr.email == nil {
		return
	}
	user, err := jr.users.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load user for reminder mail", "user_id", userID, "error", err)
		return
	}
	if err := jr.email.SendAppointmentReminder(ctx, user.Email, user.Name, appt.RequestID, appt.AppointmentTime); err != nil {
		logger.Warn("Failed to send reminder mail", "user_id", userID, "error", err)
	}
}
