package handlers

import (
	"medvault/services/consent"
	"medvault/services/notification"
	"medvault/services/records"
	"medvault/services/reminder"
	"medvault/services/scheduling"
	"medvault/services/user"
)

// HandlerBundle groups the endpoint handlers with the services they call.
type HandlerBundle struct {
	Users         user.UserService
	Scheduling    scheduling.SchedulingService
	Consents      consent.ConsentService
	Records       records.RecordService
	Reminders     reminder.ReminderService
	Notifications notification.NotificationService
}
