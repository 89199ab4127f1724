package model

// ErrorResponse is the single error envelope used by every endpoint: a
// human-readable message paired with the HTTP status. Internal detail is
// logged server-side and never exposed here.
type ErrorResponse struct {
	Message string `json:"message"`
}
