// Package oracle provides the narrow contract against the external language
// and vision models used for one-shot structured extraction. Callers send a
// single prompt (optionally with an inline image) and receive text that is
// expected to carry exactly one JSON object.
package oracle

import "context"

// Request is a single-turn extraction request.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Image       []byte // optional inline JPEG
	MaxTokens   int32
	Temperature float32
}

// Response carries the oracle's raw text reply.
type Response struct {
	Text string
}

// Client is implemented by concrete oracle backends.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
