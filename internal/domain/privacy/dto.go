package privacy

// UpdateSettingsRequest represents request to update privacy settings
type UpdateSettingsRequest struct {
	ProfileVisibility string `json:"profile_visibility" validate:"required,profile_visibility"`
	WhoCanReact       string `json:"who_can_react" validate:"required,engagement_audience"`
	WhoCanComment     string `json:"who_can_comment" validate:"required,engagement_audience"`
}
