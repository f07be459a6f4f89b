package background

import (
	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// GetBackgroundOutput represents the displayed background and the picker presets.
type GetBackgroundOutput struct {
	Background entity.DashboardBackground
	IsDefault  bool
	Presets    []string
	// FetchErr is set when the stored preference could not be read and the
	// cached or default background is shown instead.
	FetchErr error
}

// GetBackgroundUseCase returns the background shown by a session.
type GetBackgroundUseCase struct{}

// NewGetBackgroundUseCase creates a new GetBackgroundUseCase instance.
func NewGetBackgroundUseCase() *GetBackgroundUseCase {
	return &GetBackgroundUseCase{}
}

// Execute reads the session's displayed background.
func (uc *GetBackgroundUseCase) Execute(s *session.Session) *GetBackgroundOutput {
	bg := s.Background.Get()
	return &GetBackgroundOutput{
		Background: bg,
		IsDefault:  bg == entity.DefaultBackground(),
		Presets:    entity.PresetBackgroundColors,
		FetchErr:   s.BackgroundError(),
	}
}
