package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUserProfile returns the calling citizen's own account with their
// complaint count.
func (h *Handler) GetUserProfile(c *gin.Context) {
	summary, err := h.Store.GetUserSummary(c.GetString(ctxCallerID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	if summary == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondOK(c, http.StatusOK, summary, "Profile retrieved successfully")
}

// GetAllUsers lists every citizen account with complaint counts.
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.Store.ListUserSummaries()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	respondOK(c, http.StatusOK, users, "Users retrieved successfully")
}

// GetUserByID returns one citizen account with their full complaint list.
func (h *Handler) GetUserByID(c *gin.Context) {
	user, err := h.Store.GetUserWithComplaints(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondOK(c, http.StatusOK, user, "User retrieved successfully")
}

// GetUserComplaintsByID lists one citizen's complaints for the back office.
func (h *Handler) GetUserComplaintsByID(c *gin.Context) {
	user, err := h.Store.GetUserByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	complaints, err := h.Store.ListUserComplaints(user.ID, c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve complaints")
		return
	}
	respondOK(c, http.StatusOK, complaints, "User complaints retrieved successfully")
}
