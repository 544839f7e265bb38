package block

import "errors"

var (
	ErrCannotBlockSelf = errors.New("cannot block yourself")
	ErrUserNotFound    = errors.New("user not found")
)
