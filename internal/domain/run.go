package domain

import "time"

type RunStatus string

const (
	RunPosted               RunStatus = "posted"
	RunSkippedAlreadyPosted RunStatus = "skipped_already_posted"
	RunSkippedNoContent     RunStatus = "skipped_no_content"
)

// RunResult describes how a single pipeline run terminated.
type RunResult struct {
	RunID    string
	Status   RunStatus
	Day      time.Time
	Category string
	Query    string
	Post     *Post
	Filename string
	// FallbackReason is empty when the draft came from the text generation service.
	FallbackReason string
	Duration       time.Duration
}
