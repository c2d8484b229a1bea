package handler

import (
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aaryan-549/CivicPulse/internal/lifecycle"
	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/storage"
	"github.com/Aaryan-549/CivicPulse/internal/validation"
)

// complaintForm is the multipart form shared by both creation endpoints.
type complaintForm struct {
	Category    string
	Subcategory string
	Description string
	Address     string
	Latitude    float64
	Longitude   float64
	PlateNumber string
}

func parseComplaintForm(c *gin.Context) (*complaintForm, error) {
	f := &complaintForm{
		Category:    c.PostForm("category"),
		Subcategory: c.PostForm("subcategory"),
		Description: c.PostForm("description"),
		Address:     c.PostForm("address"),
		PlateNumber: c.PostForm("plateNumber"),
	}
	if f.Category == "" || f.Subcategory == "" || f.Description == "" || f.Address == "" {
		return nil, errors.New("category, subcategory, description and address are required")
	}

	var err error
	if f.Latitude, err = strconv.ParseFloat(c.PostForm("latitude"), 64); err != nil {
		return nil, errors.New("valid latitude is required")
	}
	if f.Longitude, err = strconv.ParseFloat(c.PostForm("longitude"), 64); err != nil {
		return nil, errors.New("valid longitude is required")
	}
	return f, nil
}

// readImage returns the uploaded image bytes, or (nil, false) when the form
// carried no file.
func readImage(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("WARNING: Failed to open uploaded image: %v", err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("WARNING: Failed to read uploaded image: %v", err)
		return nil, false
	}
	return data, true
}

// uploadMedia pushes image bytes to the media store. A failed upload is
// logged and the complaint proceeds without an image.
func (h *Handler) uploadMedia(c *gin.Context, image []byte, folder string) *lifecycle.MediaRef {
	result, err := h.Media.Upload(c.Request.Context(), image, folder)
	if err != nil {
		log.Printf("Media upload failed, proceeding without image: %v", err)
		return nil
	}
	return &lifecycle.MediaRef{URL: result.URL, PublicID: result.PublicID}
}

// CreateCivicComplaint files a civic complaint. Civic complaints skip the
// validation gate and are Approved at creation.
func (h *Handler) CreateCivicComplaint(c *gin.Context) {
	form, err := parseComplaintForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	params := lifecycle.CreateParams{
		Type:        models.TypeCivic,
		Category:    form.Category,
		Subcategory: form.Subcategory,
		Description: form.Description,
		Address:     form.Address,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
		UserID:      c.GetString(ctxCallerID),
	}

	if image, ok := readImage(c); ok {
		params.HasImage = true
		params.Media = h.uploadMedia(c, image, "civic-complaints")
	}

	complaint, err := h.Lifecycle.Create(params, nil)
	if err != nil {
		log.Printf("ERROR: Failed to create civic complaint: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to register complaint")
		return
	}

	respondOK(c, http.StatusCreated, complaint, "Complaint registered successfully")
}

// CreateTrafficComplaint files a traffic complaint. The image is uploaded and
// sent to plate OCR before the creation transaction opens; either step
// failing degrades to manual review, never to an error.
func (h *Handler) CreateTrafficComplaint(c *gin.Context) {
	form, err := parseComplaintForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	params := lifecycle.CreateParams{
		Type:        models.TypeTraffic,
		Category:    form.Category,
		Subcategory: form.Subcategory,
		Description: form.Description,
		Address:     form.Address,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
		UserID:      c.GetString(ctxCallerID),
		PlateNumber: form.PlateNumber,
	}

	var plate *validation.PlateResult
	if image, ok := readImage(c); ok {
		params.HasImage = true
		params.Media = h.uploadMedia(c, image, "traffic-violations")
		if params.Media != nil {
			plate = h.ML.ValidatePlate(c.Request.Context(), image)
		}
	}

	complaint, err := h.Lifecycle.Create(params, plate)
	if err != nil {
		log.Printf("ERROR: Failed to create traffic complaint: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to register complaint")
		return
	}

	respondOK(c, http.StatusCreated, complaint, "Traffic violation registered successfully")
}

// GetAllComplaints lists complaints with optional status/category/type
// filters and pagination.
func (h *Handler) GetAllComplaints(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := storage.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Page:     page,
		Limit:    limit,
	}

	complaints, total, err := h.Store.ListComplaints(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaints")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"complaints": complaints,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	}, "Complaints retrieved successfully")
}

// GetComplaintByID returns one complaint with filer, worker, media and the
// full status history.
func (h *Handler) GetComplaintByID(c *gin.Context) {
	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaint")
		return
	}
	if complaint == nil {
		respondError(c, http.StatusNotFound, "Complaint not found")
		return
	}
	respondOK(c, http.StatusOK, complaint, "Complaint retrieved successfully")
}

// GetUserComplaints lists the calling citizen's own complaints.
func (h *Handler) GetUserComplaints(c *gin.Context) {
	complaints, err := h.Store.ListUserComplaints(c.GetString(ctxCallerID), c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaints")
		return
	}
	respondOK(c, http.StatusOK, complaints, "User complaints retrieved successfully")
}

// GetComplaintsByCategory lists all complaints in one category.
func (h *Handler) GetComplaintsByCategory(c *gin.Context) {
	complaints, err := h.Store.ListComplaintsByCategory(c.Param("category"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaints")
		return
	}
	respondOK(c, http.StatusOK, complaints, "Complaints retrieved successfully")
}

// GetComplaintHistory returns the status audit trail, newest first.
func (h *Handler) GetComplaintHistory(c *gin.Context) {
	history, err := h.Lifecycle.ListHistory(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}
	respondOK(c, http.StatusOK, history, "Status history retrieved successfully")
}

type assignRequest struct {
	WorkerID string `json:"workerId" binding:"required"`
}

// AssignWorker hands the complaint to a worker and moves it to In-Progress.
func (h *Handler) AssignWorker(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Worker ID is required")
		return
	}

	_, err := h.Lifecycle.Assign(c.Param("id"), req.WorkerID, c.GetString(ctxCallerID))
	if errors.Is(err, lifecycle.ErrNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to assign worker")
		return
	}

	// Re-read with associations: a post-commit read is guaranteed to see
	// the change.
	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaint")
		return
	}
	respondOK(c, http.StatusOK, complaint, "Worker assigned successfully")
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateComplaintStatus writes any of the four statuses.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Status is required")
		return
	}

	_, err := h.Lifecycle.UpdateStatus(c.Param("id"), req.Status, c.GetString(ctxCallerID))
	if errors.Is(err, lifecycle.ErrInvalidArgument) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if errors.Is(err, lifecycle.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Complaint not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}

	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaint")
		return
	}
	respondOK(c, http.StatusOK, complaint, "Status updated successfully")
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// RejectComplaint rejects the complaint, optionally recording a reason.
func (h *Handler) RejectComplaint(c *gin.Context) {
	var req rejectRequest
	// Body is optional; a missing reason is fine.
	_ = c.ShouldBindJSON(&req)

	complaint, err := h.Lifecycle.Reject(c.Param("id"), req.Reason, c.GetString(ctxCallerID))
	if errors.Is(err, lifecycle.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Complaint not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to reject complaint")
		return
	}
	respondOK(c, http.StatusOK, complaint, "Complaint rejected successfully")
}

// DeleteComplaint removes a complaint permanently.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	err := h.Lifecycle.Delete(c.Param("id"))
	if errors.Is(err, lifecycle.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Complaint not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete complaint")
		return
	}
	respondOK(c, http.StatusOK, nil, "Complaint deleted successfully")
}

// GetComplaintStats returns totals by status and category.
func (h *Handler) GetComplaintStats(c *gin.Context) {
	stats, err := h.Store.ComplaintStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve statistics")
		return
	}
	respondOK(c, http.StatusOK, stats, "Statistics retrieved successfully")
}
