package handlers

import (
	"net/http"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// ListProfessionals returns the doctor directory, filterable by
// ?specialization= and ?search= (name match).
func (hb *HandlerBundle) ListProfessionals(c *gin.Context) {
	entries, err := hb.Users.ListProfessionals(
		c.Request.Context(),
		c.Query("specialization"),
		c.Query("search"),
	)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": entries})
}

// GetProfessional returns a single directory entry.
func (hb *HandlerBundle) GetProfessional(c *gin.Context) {
	entry, err := hb.Users.GetProfessional(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// AddPreferredDoctor saves a doctor on the calling patient's preferred list.
func (hb *HandlerBundle) AddPreferredDoctor(c *gin.Context) {
	var req models.AddPreferredDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	resp, err := hb.Users.AddPreferredDoctor(c.Request.Context(), c.GetString("userID"), req.DoctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
