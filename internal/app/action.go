// Package app connects user interfaces to the readme tools. Interfaces send
// named actions with loosely typed arguments and receive typed results;
// background work reports back through an event channel.
package app

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by request types that check their own fields.
type Validator interface {
	Validate() error
}

// Executor runs an action with its typed request.
type Executor[Req, Resp any] func(context.Context, Req) (Resp, error)

// Action is a named operation the UI or CLI can dispatch.
type Action interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// BaseAction adapts a typed Executor to the Action interface:
// arguments are decoded with mapstructure, validated, then executed.
type BaseAction[Req, Resp any] struct {
	name        string
	description string
	executor    Executor[Req, Resp]
}

// NewBaseAction creates an action named name.
func NewBaseAction[Req, Resp any](name, description string, executor Executor[Req, Resp]) *BaseAction[Req, Resp] {
	return &BaseAction[Req, Resp]{
		name:        name,
		description: description,
		executor:    executor,
	}
}

// Name implements Action
func (b *BaseAction[Req, Resp]) Name() string {
	return b.name
}

// Description implements Action
func (b *BaseAction[Req, Resp]) Description() string {
	return b.description
}

// Execute implements Action
func (b *BaseAction[Req, Resp]) Execute(ctx context.Context, args map[string]any) (any, error) {
	var req Req

	if err := mapstructure.Decode(args, &req); err != nil {
		return nil, &ArgumentError{Action: b.name, Cause: err}
	}

	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	return b.executor(ctx, req)
}
