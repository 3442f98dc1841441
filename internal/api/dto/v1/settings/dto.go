package settings

// UpdateRequest carries settings-store writes from the admin surface.
// Keys must be known settings keys; values are validated per key kind.
type UpdateRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// Response lists the current settings. Secret keys are masked before they
// leave the server.
type Response struct {
	Values map[string]string `json:"values"`
}
