package handler

import (
	"encoding/json"
	"io"
)

// CodeOK is the envelope code of a successful response.
const CodeOK = "OK"

// Response is the JSON envelope of every diagnostics endpoint except
// /metrics. Failed responses carry a domain error code and no data.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// NewResponse wraps data in a success envelope.
func NewResponse(requestID string, data any) *Response {
	return &Response{Code: CodeOK, RequestID: requestID, Data: data}
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(requestID, code, message string) *Response {
	return &Response{Code: code, Message: message, RequestID: requestID}
}

// Encode writes resp as one line of JSON.
func Encode(w io.Writer, resp *Response) error {
	return json.NewEncoder(w).Encode(resp)
}

// HealthResponse is the data of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
