package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrBroadcastDirNotFound is returned when the broadcast root directory doesn't exist
	ErrBroadcastDirNotFound = errors.New("broadcast directory not found")

	// ErrNoArtifacts is returned when no run-latest.json files were discovered
	ErrNoArtifacts = errors.New("no run-latest.json files found in broadcast directory")

	// ErrInvalidBlockNumber is returned when a receipt block number is neither hex nor decimal
	ErrInvalidBlockNumber = errors.New("invalid block number")
)

// ArtifactError reports a single artifact that could not be read or decoded.
// It never aborts a run; the pipeline skips the artifact and keeps going.
type ArtifactError struct {
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}
