package dto

import "github.com/CauaPrates/organiza-ai-app/internal/domain/entity"

// UpdateBackgroundRequest represents the request body for a background change.
type UpdateBackgroundRequest struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// BackgroundResponse represents the displayed dashboard background.
type BackgroundResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// BackgroundStateResponse adds the picker presets to the current background.
// Stale is set when the stored preference could not be read.
type BackgroundStateResponse struct {
	Background BackgroundResponse `json:"background"`
	IsDefault  bool               `json:"is_default"`
	Presets    []string           `json:"presets"`
	Stale      bool               `json:"stale"`
	Code       string             `json:"code,omitempty"`
}

// ToBackgroundResponse converts a domain background to its DTO.
func ToBackgroundResponse(bg entity.DashboardBackground) BackgroundResponse {
	return BackgroundResponse{
		Type:  string(bg.Type),
		Value: bg.Value,
	}
}
