package cli

import (
	"encoding/json"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// isJSONOutput reports whether --json was requested.
func isJSONOutput() bool {
	return jsonOutput
}

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}) {
	outputJSON(Response{OK: true, Data: data})
}

// outputError outputs an error JSON response.
func outputError(code, message string) {
	outputJSON(Response{
		OK:    false,
		Error: &ErrorInfo{Code: code, Message: message},
	})
}
