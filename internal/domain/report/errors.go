package report

import "errors"

var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidContentID   = errors.New("invalid content id")
	ErrInvalidReason      = errors.New("reason must be between 1 and 500 characters")
	ErrContentNotFound    = errors.New("reported content not found")
	ErrCannotReportOwn    = errors.New("cannot report your own content")
	ErrAlreadyReported    = errors.New("content already reported")
	ErrReportNotFound     = errors.New("report not found")
	ErrAlreadyResolved    = errors.New("report already resolved")
	ErrInvalidAction      = errors.New("invalid review action")
)
