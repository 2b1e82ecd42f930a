package rest

import (
	"github.com/gin-gonic/gin"
)

const (
	MsgUserNotFound  = "User not found"
	MsgRouteNotFound = "Route not found"
	MsgNameEmailReq  = "Name and email are required"
	MsgInvalidBody   = "Invalid request body"
	MsgNoFile        = "No file uploaded or invalid file type."
	MsgInvalidType   = "Invalid file type. Only JPEG, PNG and GIF images are allowed."
	MsgFileTooLarge  = "File too large. Maximum size is 5MB."
	MsgInvalidUpload = "Invalid multipart payload"
	MsgInternalError = "Internal server error"
	MsgUserCreated   = "User created successfully"
	MsgUserUpdated   = "User updated successfully"
	MsgUserDeleted   = "User deleted successfully"
	MsgFileUploaded  = "File uploaded successfully"
)

// Response is the envelope of every /api answer.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}
