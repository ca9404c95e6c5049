package handlers

import (
	"net/http"

	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns the caller's notifications, newest first.
func (hb *HandlerBundle) ListNotifications(c *gin.Context) {
	items, err := hb.Notifications.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// UnreadNotificationCount returns the caller's unread total.
func (hb *HandlerBundle) UnreadNotificationCount(c *gin.Context) {
	count, err := hb.Notifications.UnreadCount(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead marks one notification read.
func (hb *HandlerBundle) MarkNotificationRead(c *gin.Context) {
	n, err := hb.Notifications.MarkRead(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllNotificationsRead marks every unread notification read.
func (hb *HandlerBundle) MarkAllNotificationsRead(c *gin.Context) {
	updated, err := hb.Notifications.MarkAllRead(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteNotification removes one of the caller's notifications.
func (hb *HandlerBundle) DeleteNotification(c *gin.Context) {
	if err := hb.Notifications.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
