package handlers

import (
	"net/http"
	"strconv"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// CreateReminder stores and schedules a reminder for the caller.
func (hb *HandlerBundle) CreateReminder(c *gin.Context) {
	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	rem, err := hb.Reminders.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rem)
}

// ListReminders lists the caller's active reminders.
func (hb *HandlerBundle) ListReminders(c *gin.Context) {
	items, err := hb.Reminders.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": items})
}

// UpcomingReminders lists reminders firing in the next N days (default 7).
func (hb *HandlerBundle) UpcomingReminders(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input", "days must be between 1 and 365")
			return
		}
		days = n
	}
	items, err := hb.Reminders.Upcoming(c.Request.Context(), c.GetString("userID"), time.Duration(days)*24*time.Hour)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": items})
}

// UpdateReminder mutates an owned reminder.
func (hb *HandlerBundle) UpdateReminder(c *gin.Context) {
	var req models.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	rem, err := hb.Reminders.Update(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

// CompleteReminder marks a reminder done.
func (hb *HandlerBundle) CompleteReminder(c *gin.Context) {
	if err := hb.Reminders.Complete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder completed"})
}

// DeleteReminder deactivates a reminder.
func (hb *HandlerBundle) DeleteReminder(c *gin.Context) {
	if err := hb.Reminders.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}
