package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Path  string `mapstructure:"path"`
	Count int    `mapstructure:"count"`
}

func (r *echoRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

type echoResponse struct {
	Path  string
	Count int
}

func newEchoAction() *BaseAction[echoRequest, *echoResponse] {
	return NewBaseAction("echo", "Echo the request", func(_ context.Context, req echoRequest) (*echoResponse, error) {
		return &echoResponse{Path: req.Path, Count: req.Count}, nil
	})
}

func TestBaseAction_Execute(t *testing.T) {
	a := newEchoAction()

	res, err := a.Execute(context.Background(), map[string]any{"path": "/data/readme.txt", "count": 3})

	require.NoError(t, err)
	assert.Equal(t, &echoResponse{Path: "/data/readme.txt", Count: 3}, res)
	assert.Equal(t, "echo", a.Name())
	assert.Equal(t, "Echo the request", a.Description())
}

func TestBaseAction_ValidationFails(t *testing.T) {
	res, err := newEchoAction().Execute(context.Background(), map[string]any{"count": 1})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrPathRequired)
	assert.Contains(t, err.Error(), "echo validation failed")
}

func TestBaseAction_BadArgumentType(t *testing.T) {
	_, err := newEchoAction().Execute(context.Background(), map[string]any{"path": 42})

	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "echo", argErr.Action)
}

func TestBaseAction_NilArgs(t *testing.T) {
	a := NewBaseAction("noop", "", func(_ context.Context, _ ListReadmesRequest) (string, error) {
		return "ok", nil
	})

	res, err := a.Execute(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}

func TestCreateReadmeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateReadmeRequest
		wantErr bool
	}{
		{"Path Only", CreateReadmeRequest{Path: "/a/readme.txt"}, false},
		{"Dir Only", CreateReadmeRequest{Dir: "/a", Policy: "files"}, false},
		{"Neither", CreateReadmeRequest{}, true},
		{"Both", CreateReadmeRequest{Path: "/a/readme.txt", Dir: "/a"}, true},
		{"Unknown Policy", CreateReadmeRequest{Path: "/a/readme.txt", Policy: "everything"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
