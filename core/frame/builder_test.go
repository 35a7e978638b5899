package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameBuilder(t *testing.T) {
	tests := []struct {
		name      string
		buildFn   func(fb *FrameBuilder) *FrameBuilder
		wantNames []string
		wantRows  int
		wantErr   bool
	}{
		{
			name: "typed columns in declaration order",
			buildFn: func(fb *FrameBuilder) *FrameBuilder {
				return fb.
					Ints("id", 1, 2).
					Strings("name", "ann", "bob").
					Bools("active", true, false)
			},
			wantNames: []string{"id", "name", "active"},
			wantRows:  2,
		},
		{
			name: "prebuilt column via Column",
			buildFn: func(fb *FrameBuilder) *FrameBuilder {
				return fb.Column(Floats("score", 0.5, 0.9)).Anys("extra", nil, map[string]any{"k": 1})
			},
			wantNames: []string{"score", "extra"},
			wantRows:  2,
		},
		{
			name: "reset drops accumulated columns",
			buildFn: func(fb *FrameBuilder) *FrameBuilder {
				return fb.Ints("junk", 1).Reset().Strings("only", "x")
			},
			wantNames: []string{"only"},
			wantRows:  1,
		},
		{
			name: "mismatched lengths fail at build",
			buildFn: func(fb *FrameBuilder) *FrameBuilder {
				return fb.Ints("a", 1, 2).Ints("b", 1)
			},
			wantErr: true,
		},
		{
			name: "duplicate names fail at build",
			buildFn: func(fb *FrameBuilder) *FrameBuilder {
				return fb.Ints("a", 1).Floats("a", 1.0)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr, err := tt.buildFn(NewFrameBuilder()).Build()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, fr.Names())
			assert.Equal(t, tt.wantRows, fr.Len())
		})
	}
}

func TestFrameBuilderClone(t *testing.T) {
	base := NewFrameBuilder().Ints("a", 1, 2)

	derived := base.Clone().Ints("b", 3, 4)
	fr, err := derived.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fr.Names())

	original, err := base.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, original.Names())
}

func TestFrameBuilderValidate(t *testing.T) {
	t.Run("Valid builder", func(t *testing.T) {
		result := NewFrameBuilder().Ints("a", 1).Floats("b", 2.0).Validate()
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("Collects every problem at once", func(t *testing.T) {
		result := NewFrameBuilder().
			Ints("a", 1, 2).
			Ints("a", 3, 4).
			Strings("", "x", "y").
			Floats("c", 1.0).
			Validate()

		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 3)
		assert.Contains(t, result.Errors[0].Error(), "duplicate column name")
		assert.Contains(t, result.Errors[1].Error(), "column name cannot be empty")
		assert.Contains(t, result.Errors[2].Error(), "expected 2")
	})
}

func TestFrameBuilderString(t *testing.T) {
	assert.Equal(t, "EMPTY FRAME", NewFrameBuilder().String())

	s := NewFrameBuilder().Ints("a", 1, 2).Strings("b", "x", "y").String()
	assert.Equal(t, "COLUMNS: a(integer:2), b(string:2)", s)
}
