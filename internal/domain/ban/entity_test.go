package ban

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBanEffectiveAt(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ban      *Ban
		expected bool
	}{
		{
			name:     "nil ban",
			ban:      nil,
			expected: false,
		},
		{
			name: "permanent active ban",
			ban: &Ban{
				ID:       uuid.New(),
				BanType:  TypePermanent,
				IsActive: true,
			},
			expected: true,
		},
		{
			name: "shadow ban expiring in the future",
			ban: &Ban{
				ID:        uuid.New(),
				BanType:   TypeShadow,
				IsActive:  true,
				ExpiresAt: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
			},
			expected: true,
		},
		{
			name: "stale row with is_active still set",
			ban: &Ban{
				ID:        uuid.New(),
				BanType:   TypeShadow,
				IsActive:  true,
				ExpiresAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
			},
			expected: false,
		},
		{
			name: "expiry exactly at now",
			ban: &Ban{
				ID:        uuid.New(),
				BanType:   TypeShadow,
				IsActive:  true,
				ExpiresAt: sql.NullTime{Time: now, Valid: true},
			},
			expected: false,
		},
		{
			name: "deactivated ban",
			ban: &Ban{
				ID:       uuid.New(),
				BanType:  TypePermanent,
				IsActive: false,
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ban.EffectiveAt(now); got != tt.expected {
				t.Errorf("EffectiveAt() = %v, want %v", got, tt.expected)
			}
		})
	}
}
