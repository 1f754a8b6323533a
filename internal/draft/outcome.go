package draft

import "blog_autopost/internal/domain"

// FallbackReason says why the deterministic template was used.
type FallbackReason string

const (
	ReasonNone              FallbackReason = ""
	ReasonNoCredential      FallbackReason = "no_credential"
	ReasonRequestFailed     FallbackReason = "request_failed"
	ReasonBadStatus         FallbackReason = "bad_status"
	ReasonMalformedResponse FallbackReason = "malformed_response"
)

// Outcome is either a generated draft or a fallback draft with its reason.
// Draft is always populated.
type Outcome struct {
	Draft  domain.DraftContent
	Reason FallbackReason
	Err    error
}

// Generated reports whether the draft came from the text generation service.
func (o Outcome) Generated() bool {
	return o.Reason == ReasonNone
}

func generated(d domain.DraftContent) Outcome {
	return Outcome{Draft: d}
}

func fallback(d domain.DraftContent, reason FallbackReason, err error) Outcome {
	return Outcome{Draft: d, Reason: reason, Err: err}
}
