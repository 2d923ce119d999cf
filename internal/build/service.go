package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/glossgen/internal/config"
	"git.home.luguber.info/inful/glossgen/internal/linkverify"
)

// Service is the interface for executing glossary builds.
type Service interface {
	// Run executes a complete build: read, parse, link, render, write.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required to execute a build.
type Request struct {
	// Config is the loaded configuration for this build.
	Config *config.Config
}

// Result contains the outcome of a build execution.
type Result struct {
	Status Status
	RunID  string

	// Terms is the number of glossary terms parsed.
	Terms int
	// PagesWritten counts pages handed to the writer, index included.
	PagesWritten int
	// Unlinkable lists terms that contain separators and so are never
	// linked inside definitions.
	Unlinkable []string
	// Verification is set when link verification ran.
	Verification *linkverify.Result

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Status represents the outcome of a build execution.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
