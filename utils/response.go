package utils

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int64      `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CountOf makes a count usable as an optional envelope field.
func CountOf(n int64) *int64 {
	return &n
}
