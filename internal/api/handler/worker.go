package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/Aaryan-549/CivicPulse/internal/models"
)

type createWorkerRequest struct {
	Name  string   `json:"name" binding:"required"`
	Email string   `json:"email" binding:"required,email"`
	Phone string   `json:"phone" binding:"required"`
	Zones []string `json:"zones"`
}

type updateWorkerRequest struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Zones []string `json:"zones"`
}

type workerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAllWorkers lists workers, optionally filtered by status.
func (h *Handler) GetAllWorkers(c *gin.Context) {
	workers, err := h.Store.ListWorkers(c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve workers")
		return
	}
	respondOK(c, http.StatusOK, workers, "Workers retrieved successfully")
}

// GetWorkerByID returns one worker's profile.
func (h *Handler) GetWorkerByID(c *gin.Context) {
	worker, err := h.Store.GetWorkerByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve worker")
		return
	}
	if worker == nil {
		respondError(c, http.StatusNotFound, "Worker not found")
		return
	}
	respondOK(c, http.StatusOK, worker, "Worker retrieved successfully")
}

// CreateWorker registers a new field worker.
func (h *Handler) CreateWorker(c *gin.Context) {
	var req createWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name, email and phone are required")
		return
	}

	existing, err := h.Store.FindWorkerByEmailOrPhone(req.Email, req.Phone)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create worker")
		return
	}
	if existing != nil {
		respondError(c, http.StatusBadRequest, "Email or phone already registered")
		return
	}

	worker := &models.Worker{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: models.WorkerActive,
		Zones:  pq.StringArray(req.Zones),
	}
	if err := h.Store.CreateWorker(worker); err != nil {
		log.Printf("ERROR: Failed to create worker %s: %v", req.Email, err)
		respondError(c, http.StatusInternalServerError, "Failed to create worker")
		return
	}

	respondOK(c, http.StatusCreated, worker, "Worker created successfully")
}

// UpdateWorker applies a partial profile update. AssignedCount is owned by
// the lifecycle engine and cannot be set here.
func (h *Handler) UpdateWorker(c *gin.Context) {
	var req updateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	worker, err := h.Store.GetWorkerByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update worker")
		return
	}
	if worker == nil {
		respondError(c, http.StatusNotFound, "Worker not found")
		return
	}

	if req.Name != "" {
		worker.Name = req.Name
	}
	if req.Email != "" {
		worker.Email = req.Email
	}
	if req.Phone != "" {
		worker.Phone = req.Phone
	}
	if req.Zones != nil {
		worker.Zones = pq.StringArray(req.Zones)
	}

	if err := h.Store.UpdateWorker(worker); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update worker")
		return
	}
	respondOK(c, http.StatusOK, worker, "Worker updated successfully")
}

// UpdateWorkerStatus activates or deactivates a worker.
func (h *Handler) UpdateWorkerStatus(c *gin.Context) {
	var req workerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Status is required")
		return
	}
	if req.Status != models.WorkerActive && req.Status != models.WorkerInactive {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	worker, err := h.Store.GetWorkerByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update worker")
		return
	}
	if worker == nil {
		respondError(c, http.StatusNotFound, "Worker not found")
		return
	}

	worker.Status = req.Status
	if err := h.Store.UpdateWorker(worker); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update worker")
		return
	}
	respondOK(c, http.StatusOK, worker, "Worker status updated successfully")
}

// GetWorkerComplaints lists every complaint referencing the worker.
func (h *Handler) GetWorkerComplaints(c *gin.Context) {
	worker, err := h.Store.GetWorkerByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve worker")
		return
	}
	if worker == nil {
		respondError(c, http.StatusNotFound, "Worker not found")
		return
	}

	complaints, err := h.Store.ListWorkerComplaints(worker.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaints")
		return
	}
	respondOK(c, http.StatusOK, complaints, "Worker complaints retrieved successfully")
}
