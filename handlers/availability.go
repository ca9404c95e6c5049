package handlers

import (
	"net/http"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// GetDoctorAvailability returns a doctor's weekly ranges, or the expanded
// slot listing when a ?date=YYYY-MM-DD query is present.
func (hb *HandlerBundle) GetDoctorAvailability(c *gin.Context) {
	doctorID := c.Param("doctorId")
	date := c.Query("date")

	ranges, slots, err := hb.Scheduling.GetDoctorAvailability(c.Request.Context(), doctorID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if date == "" {
		c.JSON(http.StatusOK, gin.H{"availability": ranges})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// AddAvailability creates a weekly availability range for the caller.
func (hb *HandlerBundle) AddAvailability(c *gin.Context) {
	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	rng, err := hb.Scheduling.AddAvailability(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rng)
}

// UpdateAvailability mutates an owned range.
func (hb *HandlerBundle) UpdateAvailability(c *gin.Context) {
	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	rng, err := hb.Scheduling.UpdateAvailability(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rng)
}

// DeleteAvailability removes an owned range.
func (hb *HandlerBundle) DeleteAvailability(c *gin.Context) {
	if err := hb.Scheduling.DeleteAvailability(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability slot deleted"})
}
