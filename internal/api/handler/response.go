package handler

import "github.com/gin-gonic/gin"

// apiResponse is the envelope every endpoint answers with, success or not.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, apiResponse{Success: true, Data: data, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Success: false, Data: nil, Message: message})
}
