package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medibook/config"
	"medibook/models"

	"github.com/hibiken/asynq"
)

// ReminderEnqueuer schedules appointment reminder tasks on the worker queue.
// It satisfies the scheduling service's ReminderScheduler dependency.
type ReminderEnqueuer struct {
	client *asynq.Client
}

// NewReminderEnqueuer constructs an enqueuer against the reminder queue DB.
func NewReminderEnqueuer() *ReminderEnqueuer {
	return &ReminderEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		}),
	}
}

// ScheduleReminder enqueues a reminder to fire ahead of the slot time.
// Bookings close enough to the slot get no reminder.
func (e *ReminderEnqueuer) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	instant, err := appt.SlotTime.Instant(appt.SlotDate, time.Local)
	if err != nil {
		return fmt.Errorf("cannot derive reminder time: %w", err)
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMins) * time.Minute
	if lead <= 0 {
		lead = time.Hour
	}
	fireAt := instant.Add(-lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{AppointmentID: appt.ID})
	if err != nil {
		return fmt.Errorf("cannot marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeAppointmentReminder, payload)
	_, err = e.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt), asynq.Queue("default"))
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying queue client.
func (e *ReminderEnqueuer) Close() error {
	return e.client.Close()
}
