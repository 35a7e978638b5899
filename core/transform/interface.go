// Package transform defines the interfaces implemented by the pieces that
// plug into a pipeline: transformers that rewrite frames, and sources and
// sinks that move frames in and out of external storage.
package transform

import (
	"context"

	"github.com/asaidimu/go-rowwise/core/expr"
	"github.com/asaidimu/go-rowwise/core/frame"
)

// Transformer applies a plan to a frame, producing a new frame.
type Transformer interface {
	Apply(fr *frame.Frame, plan *Plan, enclosing *expr.Scope) (*frame.Frame, error)
}

// FrameSource loads named frames from an external store.
type FrameSource interface {
	Load(ctx context.Context, name string) (*frame.Frame, error)
}

// FrameSink persists named frames to an external store.
type FrameSink interface {
	Save(ctx context.Context, name string, fr *frame.Frame) error
}
