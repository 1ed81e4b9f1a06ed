package util

import "errors"

var (
	ErrEmptyTranscript   = errors.New("Empty transcript text provided")
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrNoChunksProcessed = errors.New("Summary generation failed: No chunks were processed successfully. Check logs for specific errors.")
)
