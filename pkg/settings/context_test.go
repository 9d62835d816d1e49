package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func() context.Context
		wantOk bool
	}{
		{
			name:   "background",
			ctx:    context.Background,
			wantOk: false,
		},
		{
			name: "nil run",
			ctx: func() context.Context {
				return IntoContext(context.Background(), nil)
			},
			wantOk: false,
		},
		{
			name: "value of another type under the key",
			ctx: func() context.Context {
				return context.WithValue(context.Background(), settingsContextKey, Run{})
			},
			wantOk: false,
		},
		{
			name: "cli defaults",
			ctx: func() context.Context {
				return IntoContext(context.Background(), NewCliParams())
			},
			wantOk: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromContext(tt.ctx())
			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, "auto", got.Output)
			assert.Equal(t, 2, got.Indent)
			assert.Equal(t, Input{}, got.Input)
		})
	}
}

func TestRunIsSharedThroughContext(t *testing.T) {
	run := NewCliParams()
	ctx := IntoContext(context.Background(), run)

	// Commands resolve their input after the root command stored the run.
	run.Input = Input{Path: "Cargo.toml"}
	run.InPlace = true

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, run, got)
	assert.Equal(t, Input{Path: "Cargo.toml"}, got.Input)
	assert.True(t, got.InPlace)
}

func TestInnerContextShadowsRun(t *testing.T) {
	outer := &Run{Output: "json", Input: Input{FromStdin: true}}
	inner := &Run{Output: "toml", Indent: 4, Input: Input{Path: "app.toml"}}

	parent := IntoContext(context.Background(), outer)
	child := IntoContext(parent, inner)

	got, ok := FromContext(child)
	require.True(t, ok)
	assert.Equal(t, inner, got)

	got, ok = FromContext(parent)
	require.True(t, ok)
	assert.True(t, got.Input.FromStdin)
	assert.Equal(t, "json", got.Output)

	// Storing nil hides the outer run rather than falling back to it.
	_, ok = FromContext(IntoContext(parent, nil))
	assert.False(t, ok)
}
