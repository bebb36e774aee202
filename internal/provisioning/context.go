package provisioning

import (
	"context"

	"github.com/hostprep/hostprep/internal/config"
)

// Context wraps all dependencies and state needed by a provisioning stage.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Observer Observer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: NewConsoleObserver(),
	}
}
