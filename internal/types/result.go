package types

// Result represents a tool execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Success creates a successful result
func Success(data map[string]interface{}) *Result {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Result{Success: true, Data: data}
}

// Failure creates a failed result
func Failure(message string) *Result {
	msg := message
	return &Result{Success: false, Error: &msg}
}

// ErrorMessage returns the error string or a fallback for malformed results
func (r *Result) ErrorMessage() string {
	if r == nil || r.Error == nil {
		return "Unknown Stars API error"
	}
	return *r.Error
}
