package handlers

import (
	"net/http"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// BookAppointment books a slot with a doctor for the calling patient.
func (hb *HandlerBundle) BookAppointment(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	appt, err := hb.Scheduling.BookAppointment(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// MyAppointments lists the caller's appointments.
func (hb *HandlerBundle) MyAppointments(c *gin.Context) {
	appts, err := hb.Scheduling.MyAppointments(c.Request.Context(), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// UpdateAppointmentStatus lets the owning doctor approve, reject or complete.
func (hb *HandlerBundle) UpdateAppointmentStatus(c *gin.Context) {
	var req models.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	appt, err := hb.Scheduling.UpdateAppointmentStatus(c.Request.Context(), c.Param("id"), c.GetString("userID"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment lets the owning patient cancel.
func (hb *HandlerBundle) CancelAppointment(c *gin.Context) {
	appt, err := hb.Scheduling.CancelAppointment(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// AddFeedback records the patient's rating of a completed appointment.
func (hb *HandlerBundle) AddFeedback(c *gin.Context) {
	var req models.AddFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	fb, err := hb.Scheduling.AddFeedback(c.Request.Context(), c.Param("appointmentId"), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// DoctorFeedback lists a doctor's public feedback.
func (hb *HandlerBundle) DoctorFeedback(c *gin.Context) {
	items, err := hb.Scheduling.DoctorFeedback(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": items})
}
