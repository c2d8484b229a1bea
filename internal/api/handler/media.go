package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadMedia stores a standalone image and returns its reference. Unlike the
// inline complaint upload, a failure here is an error: there is no complaint
// to degrade to.
func (h *Handler) UploadMedia(c *gin.Context) {
	image, ok := readImage(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "No image provided")
		return
	}

	result, err := h.Media.Upload(c.Request.Context(), image, "uploads")
	if err != nil {
		log.Printf("ERROR: Failed to upload image: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"url":      result.URL,
		"publicId": result.PublicID,
	}, "Image uploaded successfully")
}
