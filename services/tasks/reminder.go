package tasks

import (
	"encoding/json"
	"time"

	"medvault/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// Scheduler is the enqueue surface of asynq.Client, split out so services can
// be tested without redis.
type Scheduler interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewReminderTask builds the delayed delivery task for a reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeSendReminder, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}
