package constants

// Context keys used to pass validated request data between middleware and
// handlers.
const (
	// ContextKeySubmission holds the decoded submission payload (map[string]interface{}).
	ContextKeySubmission = "submission"
	// ContextKeySettingsUpdate holds the validated settings update DTO.
	ContextKeySettingsUpdate = "settings_update"
	// ContextKeyRequestID holds the per-request correlation identifier.
	ContextKeyRequestID = "request_id"
)
