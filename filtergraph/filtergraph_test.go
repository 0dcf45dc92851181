package filtergraph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleSegment(t *testing.T) {
	b := NewBuilder("in.mp4")
	require.NoError(t, b.AddSegment(1.5, 3.0))

	args, err := b.Finish("out.mkv")
	require.NoError(t, err)

	want := []string{
		"ffmpeg",
		"-i", "in.mp4",
		"-filter_complex",
		"[0:v]trim=start=1.5:end=3,setpts=PTS-STARTPTS[0v];" +
			"[0:a]atrim=start=1.5:end=3,asetpts=PTS-STARTPTS[0a];" +
			"[0v][0a]concat=n=1:v=1:a=1[outv][outa]",
		"-map", "[outv]",
		"-map", "[outa]",
		"out.mkv",
	}
	assert.Equal(t, want, args)
}

func TestTwoSegmentsLabelOrder(t *testing.T) {
	b := NewBuilder("match.mp4")
	require.NoError(t, b.AddSegment(0, 1))
	require.NoError(t, b.AddSegment(5, 8))

	args, err := b.Finish("out.mkv")
	require.NoError(t, err)

	expr := args[4]
	assert.Contains(t, expr, "[0:v]trim=start=0:end=1,setpts=PTS-STARTPTS[0v];")
	assert.Contains(t, expr, "[0:a]atrim=start=0:end=1,asetpts=PTS-STARTPTS[0a];")
	assert.Contains(t, expr, "[0:v]trim=start=5:end=8,setpts=PTS-STARTPTS[1v];")
	assert.Contains(t, expr, "[0:a]atrim=start=5:end=8,asetpts=PTS-STARTPTS[1a];")
	assert.True(t, strings.HasSuffix(expr, "[0v][0a][1v][1a]concat=n=2:v=1:a=1[outv][outa]"),
		"concat directive should reference segments in order: %q", expr)
}

func TestSegmentCountMatchesClipCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b := NewBuilder("in.mp4")
			for i := 0; i < n; i++ {
				require.NoError(t, b.AddSegment(float64(i), float64(i)+0.5))
			}
			assert.Equal(t, n, b.SegmentCount())

			args, err := b.Finish("out.mkv")
			require.NoError(t, err)

			expr := args[4]
			assert.Equal(t, n, strings.Count(expr, "]trim="))
			assert.Equal(t, n, strings.Count(expr, "]atrim="))
			assert.Contains(t, expr, fmt.Sprintf("concat=n=%d:v=1:a=1[outv][outa]", n))
		})
	}
}

func TestDeterministicGeneration(t *testing.T) {
	build := func() []string {
		b := NewBuilder("in.mp4")
		require.NoError(t, b.AddSegment(1.5, 3))
		require.NoError(t, b.AddSegment(10.25, 20))
		args, err := b.Finish("out.mkv")
		require.NoError(t, err)
		return args
	}
	assert.Equal(t, build(), build())
}

func TestAddSegmentAfterFinish(t *testing.T) {
	b := NewBuilder("in.mp4")
	require.NoError(t, b.AddSegment(0, 1))
	_, err := b.Finish("out.mkv")
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddSegment(2, 3), ErrFinished)
}

func TestDoubleFinish(t *testing.T) {
	b := NewBuilder("in.mp4")
	_, err := b.Finish("out.mkv")
	require.NoError(t, err)

	_, err = b.Finish("out.mkv")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{3.0, "3"},
		{90.125, "90.125"},
		{3600, "3600"},
		{0.1, "0.1"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, formatSeconds(tc.in), "formatSeconds(%v)", tc.in)
	}
}
