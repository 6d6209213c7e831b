package providers

import (
	"fmt"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
)

// success wraps data in a successful Result with a nil error, so tool
// handlers can return in one expression
func success(data map[string]interface{}) (*types.Result, error) {
	return types.Success(data), nil
}

// failure wraps a message in a failed Result. Validation and upstream
// failures are values, not errors.
func failure(message string) (*types.Result, error) {
	return types.Failure(message), nil
}

// getString extracts a string parameter
func getString(params map[string]interface{}, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// getArray extracts an array parameter
func getArray(params map[string]interface{}, key string) []interface{} {
	val, ok := params[key]
	if !ok {
		return nil
	}

	arr, ok := val.([]interface{})
	if !ok {
		return nil
	}

	return arr
}

// itemString reads a string field from a decoded JSON object
func itemString(item map[string]interface{}, key string) string {
	if val, ok := item[key].(string); ok {
		return val
	}
	return ""
}
