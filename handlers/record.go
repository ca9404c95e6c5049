package handlers

import (
	"io"
	"net/http"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// 10 MB cap on uploaded record documents.
const maxDocumentSize = 10 << 20

// CreateRecord stores a new medical record.
func (hb *HandlerBundle) CreateRecord(c *gin.Context) {
	var req models.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	rec, err := hb.Records.Create(c.Request.Context(), c.GetString("userID"), c.GetString("role"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// MyRecords lists the calling patient's records.
func (hb *HandlerBundle) MyRecords(c *gin.Context) {
	items, err := hb.Records.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": items})
}

// PatientRecords lists a patient's records for a consented professional.
func (hb *HandlerBundle) PatientRecords(c *gin.Context) {
	items, err := hb.Records.ListByPatient(c.Request.Context(), c.Param("patientId"), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": items})
}

// RecordsByType filters the caller's records by type.
func (hb *HandlerBundle) RecordsByType(c *gin.Context) {
	items, err := hb.Records.ListByType(c.Request.Context(), c.GetString("userID"), c.Param("recordType"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": items})
}

// UpdateRecord applies partial mutations to a record.
func (hb *HandlerBundle) UpdateRecord(c *gin.Context) {
	var req models.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	rec, err := hb.Records.Update(c.Request.Context(), c.Param("id"), c.GetString("userID"), c.GetString("role"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteRecord removes a record.
func (hb *HandlerBundle) DeleteRecord(c *gin.Context) {
	if err := hb.Records.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID"), c.GetString("role")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

// AddRecordDocument accepts a multipart file, encrypts it and attaches it to
// the record.
func (hb *HandlerBundle) AddRecordDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "a file field is required")
		return
	}
	if fileHeader.Size > maxDocumentSize {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "file exceeds the 10 MB limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "could not read uploaded file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize+1))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "could not read uploaded file")
		return
	}

	rec, err := hb.Records.AddDocument(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		c.GetString("role"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}
