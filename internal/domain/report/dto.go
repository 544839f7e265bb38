package report

// CreateReportRequest represents request to report content or a user
type CreateReportRequest struct {
	ContentType string `json:"content_type" validate:"required"`
	ContentID   string `json:"content_id" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
}

// ReviewReportRequest represents the admin review decision on a report
type ReviewReportRequest struct {
	Action string `json:"action" validate:"required,oneof=reviewed dismissed"`
}

// ListReportsFilter filters reports in the admin review queue
type ListReportsFilter struct {
	Status Status
	Limit  int
	Offset int
}
