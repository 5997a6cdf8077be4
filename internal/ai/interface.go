package ai

import "context"

// StagedFile is the opaque handle the service returns once it has
// ingested an image's bytes.
type StagedFile struct {
	Name     string
	URI      string
	MIMEType string
}

// Service is the content-analysis capability the orchestrator drives.
// Any provider that can stage images, report their readiness and answer
// a multi-part submission is pluggable here.
type Service interface {
	// Stage hands one image file to the service and returns its handle.
	Stage(ctx context.Context, path, mimeType string) (StagedFile, error)

	// AwaitReady blocks until every handle reaches a ready state. A
	// handle reaching a failed state, the bounded poll running out, or
	// the context ending aborts the wait with an error.
	AwaitReady(ctx context.Context, files []StagedFile) error

	// Submit sends the staged handles plus the instruction text as one
	// conversation and returns the narrative.
	Submit(ctx context.Context, files []StagedFile, instructions string) (string, error)
}
