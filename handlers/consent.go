package handlers

import (
	"net/http"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// RequestConsent files a professional's record-access request.
func (hb *HandlerBundle) RequestConsent(c *gin.Context) {
	var req models.RequestConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	consent, err := hb.Consents.Request(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, consent)
}

// PendingConsents lists the calling patient's unanswered requests.
func (hb *HandlerBundle) PendingConsents(c *gin.Context) {
	items, err := hb.Consents.Pending(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consents": items})
}

// MyConsents lists every consent the caller is a party to.
func (hb *HandlerBundle) MyConsents(c *gin.Context) {
	items, err := hb.Consents.Mine(c.Request.Context(), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consents": items})
}

// ApproveConsent approves a pending request.
func (hb *HandlerBundle) ApproveConsent(c *gin.Context) {
	hb.respondToConsent(c, models.ConsentApproved)
}

// RejectConsent rejects a pending request.
func (hb *HandlerBundle) RejectConsent(c *gin.Context) {
	hb.respondToConsent(c, models.ConsentRejected)
}

func (hb *HandlerBundle) respondToConsent(c *gin.Context, status string) {
	consent, err := hb.Consents.Respond(c.Request.Context(), c.Param("id"), c.GetString("userID"), status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consent)
}

// RevokeConsent deletes a consent, cutting the professional's access.
func (hb *HandlerBundle) RevokeConsent(c *gin.Context) {
	if err := hb.Consents.Revoke(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consent revoked"})
}
