// Package filtergraph assembles the ffmpeg -filter_complex expression and
// argument list for trimming segments out of one input and concatenating
// them into a single output.
package filtergraph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFinished is returned when a builder is used after Finish.
var ErrFinished = errors.New("filtergraph: builder already finished")

// Builder accumulates trim/concat filter fragments for one input file.
// Call AddSegment once per selection in order, then Finish exactly once.
// A finished builder rejects further calls.
type Builder struct {
	inputPath string
	fragments []string
	next      int
	finished  bool
}

// NewBuilder returns a Builder for the given input file.
func NewBuilder(inputPath string) *Builder {
	return &Builder{inputPath: inputPath}
}

// SegmentCount returns the number of segments added so far.
func (b *Builder) SegmentCount() int {
	return b.next
}

// AddSegment appends trim/atrim fragments for the [start,end] range of
// input 0, labelling the resulting streams <i>v and <i>a where i is the
// next segment index. Ranges are not validated here; the caller is
// expected to have checked start < end.
func (b *Builder) AddSegment(start, end float64) error {
	if b.finished {
		return ErrFinished
	}
	s := formatSeconds(start)
	e := formatSeconds(end)
	b.fragments = append(b.fragments,
		fmt.Sprintf("[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[%dv];", s, e, b.next),
		fmt.Sprintf("[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[%da];", s, e, b.next),
	)
	b.next++
	return nil
}

// Finish appends the concat directive joining every segment's streams into
// [outv] and [outa], and returns the complete ffmpeg argument vector:
//
//	ffmpeg -i <input> -filter_complex <expr> -map [outv] -map [outa] <output>
//
// The builder accepts no further calls afterwards.
func (b *Builder) Finish(outputPath string) ([]string, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true

	var sb strings.Builder
	for _, f := range b.fragments {
		sb.WriteString(f)
	}
	for i := 0; i < b.next; i++ {
		fmt.Fprintf(&sb, "[%dv][%da]", i, i)
	}
	fmt.Fprintf(&sb, "concat=n=%d:v=1:a=1[outv][outa]", b.next)

	return []string{
		"ffmpeg",
		"-i", b.inputPath,
		"-filter_complex", sb.String(),
		"-map", "[outv]",
		"-map", "[outa]",
		outputPath,
	}, nil
}

// formatSeconds renders a time offset with the shortest decimal form that
// round-trips (1.5 -> "1.5", 3.0 -> "3").
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
