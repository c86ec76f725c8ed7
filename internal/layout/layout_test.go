package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/leaf/internal/document"
)

func TestComputeSequence_Continuous(t *testing.T) {
	vp := Viewport{Width: 300, Height: 350}

	t.Run("two pages twice viewport height", func(t *testing.T) {
		doc := document.NewUniformPattern(2, document.Size{Width: 300, Height: 700})
		seq, err := ComputeSequence(doc, vp, Continuous, 1)
		require.NoError(t, err)
		require.Len(t, seq, 4)
		require.NoError(t, Validate(seq, doc, vp))

		assert.Equal(t, []int{0, 0, 1, 1}, pages(seq))
		assert.Equal(t, 0.0, seq[0].Region.Y)
		assert.Equal(t, 350.0, seq[1].Region.Y)
		assert.Equal(t, 1.0, seq[0].Scale)
	})

	t.Run("last screen shorter", func(t *testing.T) {
		doc := document.NewUniformPattern(2, document.Size{Width: 663, Height: 886})
		seq, err := ComputeSequence(doc, vp, Continuous, 1)
		require.NoError(t, err)
		require.NoError(t, Validate(seq, doc, vp))
		require.Len(t, seq, 4)

		w, h := seq[0].ContentSize()
		assert.Equal(t, 300, w)
		assert.Equal(t, 350, h)

		_, h = seq[1].ContentSize()
		assert.Equal(t, 51, h)
		assert.InDelta(t, 886.0, seq[1].Region.Y+seq[1].Region.Height, 1e-6)
		assert.Equal(t, 1, seq[2].Page)
		assert.Equal(t, 0.0, seq[2].Region.Y)
	})

	t.Run("zoom tiles columns row major", func(t *testing.T) {
		doc := document.NewUniformPattern(1, document.Size{Width: 300, Height: 350})
		seq, err := ComputeSequence(doc, vp, Continuous, 2)
		require.NoError(t, err)
		require.NoError(t, Validate(seq, doc, vp))
		require.Len(t, seq, 4)

		assert.Equal(t, 0.0, seq[0].Region.X)
		assert.Equal(t, 150.0, seq[1].Region.X)
		assert.Equal(t, 0.0, seq[1].Region.Y)
		assert.Equal(t, 0.0, seq[2].Region.X)
		assert.Equal(t, 175.0, seq[2].Region.Y)
	})
}

func TestComputeSequence_SinglePage(t *testing.T) {
	vp := Viewport{Width: 300, Height: 350}
	doc := document.NewPattern(
		document.Size{Width: 600, Height: 350},
		document.Size{Width: 100, Height: 700},
	)

	seq, err := ComputeSequence(doc, vp, SinglePage, 1)
	require.NoError(t, err)
	require.NoError(t, Validate(seq, doc, vp))
	require.Len(t, seq, 2)

	assert.Equal(t, 0.5, seq[0].Scale)
	assert.Equal(t, image.Rect(0, 87, 300, 262), seq[0].ContentRect())

	assert.Equal(t, 0.5, seq[1].Scale)
	assert.Equal(t, image.Rect(125, 0, 175, 350), seq[1].ContentRect())
}

func TestComputeSequence_Edges(t *testing.T) {
	vp := Viewport{Width: 300, Height: 350}

	t.Run("degenerate page yields one blank screen", func(t *testing.T) {
		doc := document.NewPattern(
			document.Size{Width: 300, Height: 700},
			document.Size{Width: 0, Height: 500},
			document.Size{Width: 300, Height: 350},
		)
		for _, mode := range []Mode{Continuous, SinglePage} {
			seq, err := ComputeSequence(doc, vp, mode, 1)
			require.NoError(t, err)
			require.NoError(t, Validate(seq, doc, vp))

			var blanks []Screen
			for _, s := range seq {
				if s.Page == 1 {
					blanks = append(blanks, s)
				}
			}
			require.Len(t, blanks, 1, mode.String())
			assert.True(t, blanks[0].Blank)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		seq, err := ComputeSequence(document.NewPattern(), vp, Continuous, 1)
		require.NoError(t, err)
		assert.Empty(t, seq)
	})

	t.Run("invalid viewport", func(t *testing.T) {
		_, err := ComputeSequence(document.NewUniformPattern(1, document.Size{Width: 1, Height: 1}), Viewport{}, Continuous, 1)
		assert.ErrorIs(t, err, ErrInvalidViewport)
	})

	t.Run("at least one screen per page", func(t *testing.T) {
		sizes := []document.Size{{Width: 10, Height: 10}, {Width: 5000, Height: 20}, {Width: 300, Height: 10000}}
		doc := document.NewPattern(sizes...)
		for _, mode := range []Mode{Continuous, SinglePage} {
			seq, err := ComputeSequence(doc, vp, mode, 1)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(seq), doc.PageCount())
			require.NoError(t, Validate(seq, doc, vp))
		}
	})
}

func TestValidate_Rejects(t *testing.T) {
	vp := Viewport{Width: 300, Height: 350}
	doc := document.NewUniformPattern(2, document.Size{Width: 300, Height: 700})
	seq, err := ComputeSequence(doc, vp, Continuous, 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]Screen) []Screen
	}{
		{"duplicate", func(s []Screen) []Screen { s[1] = s[0]; return s }},
		{"out of order", func(s []Screen) []Screen { s[0], s[2] = s[2], s[0]; return s }},
		{"missing page", func(s []Screen) []Screen { return s[:2] }},
		{"outside page", func(s []Screen) []Screen { s[1].Region.Y = 400; return s }},
		{"wrong viewport", func(s []Screen) []Screen { s[3].Viewport = Viewport{Width: 1, Height: 1}; return s }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := tt.mutate(append([]Screen(nil), seq...))
			assert.ErrorIs(t, Validate(mutated, doc, vp), ErrInconsistent)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("single")
	require.NoError(t, err)
	assert.Equal(t, SinglePage, m)

	m, err = ParseMode("Continuous")
	require.NoError(t, err)
	assert.Equal(t, Continuous, m)

	_, err = ParseMode("spread")
	assert.Error(t, err)
}

func pages(seq []Screen) []int {
	out := make([]int, len(seq))
	for i, s := range seq {
		out[i] = s.Page
	}
	return out
}
