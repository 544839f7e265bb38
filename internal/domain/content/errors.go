package content

import "errors"

var (
	ErrContentNotFound      = errors.New("content not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserBanned           = errors.New("user is banned")
	ErrEngagementNotAllowed = errors.New("engagement not allowed")
)
