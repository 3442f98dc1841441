package submission

// SuccessResponse is the flat body the original REST endpoints returned on a
// successful submission. Existing front-end scripts read .message directly.
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse mirrors the WP_Error JSON shape the plugins emitted, so error
// handling in deployed front-ends keeps working unchanged.
type ErrorResponse struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

// ErrorData carries the HTTP status inside the error body.
type ErrorData struct {
	Status int `json:"status"`
}
