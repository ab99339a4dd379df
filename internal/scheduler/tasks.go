package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskVisitReminder = "requests.visit.reminder"

type VisitReminderPayload struct {
	VisitID       string `json:"visitId"`
	ScheduledSlot string `json:"scheduledSlot"`
}

func NewVisitReminderTask(payload VisitReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVisitReminder, data), nil
}

func ParseVisitReminderPayload(task *asynq.Task) (VisitReminderPayload, error) {
	var payload VisitReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return VisitReminderPayload{}, err
	}
	return payload, nil
}
