package mdconverter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link destination could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	ResolutionBestEffort ResolutionMode = "best_effort"
	ResolutionStrict     ResolutionMode = "strict"
)

// LinkHook can rewrite link destinations before they are percent-encoded.
type LinkHook func(ctx context.Context, in LinkInput) (LinkOutput, error)

// LinkInput describes a markdown link being converted.
type LinkInput struct {
	Destination string
	Title       string
	Text        string
	AutoLink    bool
}

// LinkOutput contains hook-provided link overrides.
type LinkOutput struct {
	Destination string
	Handled     bool
}
