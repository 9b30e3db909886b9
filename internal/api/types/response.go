// internal/api/types/response.go
package types

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Envelope is the response body shared by every API endpoint.
// Data is only set on success; Error and Details only on failure.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope. An empty errMsg is replaced by a generic one.
func Fail(message, errMsg string, details ...string) Envelope {
	if errMsg == "" {
		errMsg = "An error occurred"
	}
	return Envelope{Success: false, Message: message, Error: errMsg, Details: details}
}

// Health is the body of the health check endpoint.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
