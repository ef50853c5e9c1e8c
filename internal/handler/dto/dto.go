// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// NotifyRequest is the body of the notify-* and subscribe routes.
type NotifyRequest struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name,omitempty"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImageUploadResponse is returned by the image upload route.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// FileUploadResponse is returned by the file upload route.
type FileUploadResponse struct {
	FileUUID string `json:"fileUUID"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}
