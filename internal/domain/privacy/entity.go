package privacy

import (
	"time"

	"github.com/google/uuid"
)

// ProfileVisibility controls who may see a user's content and profile
type ProfileVisibility string

const (
	VisibilityEveryone   ProfileVisibility = "everyone"
	VisibilityUniversity ProfileVisibility = "university"
	VisibilityNobody     ProfileVisibility = "nobody"
)

// EngagementAudience controls who may react to or comment on a user's content
type EngagementAudience string

const (
	AudienceEveryone   EngagementAudience = "everyone"
	AudienceUniversity EngagementAudience = "university"
)

// Settings represents a user's privacy settings.
// Users without a stored row get DefaultSettings.
type Settings struct {
	UserID            uuid.UUID          `db:"user_id" json:"user_id"`
	ProfileVisibility ProfileVisibility  `db:"profile_visibility" json:"profile_visibility"`
	WhoCanReact       EngagementAudience `db:"who_can_react" json:"who_can_react"`
	WhoCanComment     EngagementAudience `db:"who_can_comment" json:"who_can_comment"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// DefaultSettings returns the settings applied to users who never
// customized theirs: profile visible within the university, engagement
// open to everyone.
func DefaultSettings(userID uuid.UUID) *Settings {
	return &Settings{
		UserID:            userID,
		ProfileVisibility: VisibilityUniversity,
		WhoCanReact:       AudienceEveryone,
		WhoCanComment:     AudienceEveryone,
	}
}
