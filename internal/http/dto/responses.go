package dto

import "github.com/pbx-admin/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type LogListResponse struct {
	Logs   []models.AuditLog `json:"logs"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
