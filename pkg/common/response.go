// Package common holds the uniform response envelope returned by every
// handler across the external boundary.
package common

// Response wraps an operation result with a success flag and human-readable
// messages. Callers must branch on Success, never on payload presence alone.
type Response[T any] struct {
	Success  bool     `json:"success"`
	Messages []string `json:"messages"`
	Data     T        `json:"data,omitempty"`
}

// Ok builds a successful response carrying data.
func Ok[T any](data T, messages ...string) Response[T] {
	return Response[T]{Success: true, Messages: messages, Data: data}
}

// Failed builds a failed response with no payload.
func Failed[T any](messages ...string) Response[T] {
	return Response[T]{Success: false, Messages: messages}
}
