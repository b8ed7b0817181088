// Package controller provides output adapters for displaying mutation
// testing progress and results.
package controller

import (
	"context"

	m "pymut.dev/pkg/pymut/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeRun
)

// StartOption is a functional option for Start.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithRunMode sets the UI to mutation run mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// UI is how the workflow reports progress. Implementations range from
// plain text to the interactive results browser.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context)
	DisplayEstimation(ctx context.Context, mutants []m.Mutant, err error) error
	DisplayPhase(ctx context.Context, name string)
	DisplayPhaseDone(ctx context.Context)
	DisplayConcurrencyInfo(ctx context.Context, workers, total int)
	DisplayProgress(ctx context.Context, counts m.StatusCounts)
	DisplayMutantResult(ctx context.Context, key string, status m.MutantStatus)
	DisplayMutationScore(ctx context.Context, score float64)
}
