// Package savefile reads and writes the JSON save file produced by a
// tagging session: an ordered list of clip selections against one video.
package savefile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Clip is one selected time range within the source video, in seconds.
type Clip struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// SaveFile holds the clip selections in the order they were tagged.
// Clips are rendered in this order; no sorting or de-overlapping is applied.
type SaveFile struct {
	Clips []Clip `json:"clips"`
}

// TotalDuration returns the summed length of all clips in seconds.
func (sf *SaveFile) TotalDuration() float64 {
	var total float64
	for _, c := range sf.Clips {
		total += c.Duration()
	}
	return total
}

// rawClip mirrors Clip with pointer fields so a missing key can be told
// apart from an explicit zero.
type rawClip struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type rawSaveFile struct {
	Clips *[]rawClip `json:"clips"`
}

// Load reads and validates a save file. It fails on a missing or unreadable
// file, invalid JSON, an absent "clips" key, a clip missing "start" or
// "end", a negative start, or start >= end. An empty clips array loads
// successfully; rejecting it is left to the render step.
func Load(path string) (*SaveFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}

	var raw rawSaveFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse save file %s: %w", path, err)
	}
	if raw.Clips == nil {
		return nil, fmt.Errorf("save file %s: missing \"clips\" key", path)
	}

	sf := &SaveFile{Clips: make([]Clip, 0, len(*raw.Clips))}
	for i, rc := range *raw.Clips {
		if rc.Start == nil {
			return nil, fmt.Errorf("save file %s: clip %d: missing \"start\"", path, i)
		}
		if rc.End == nil {
			return nil, fmt.Errorf("save file %s: clip %d: missing \"end\"", path, i)
		}
		c := Clip{Start: *rc.Start, End: *rc.End}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("save file %s: clip %d: %w", path, i, err)
		}
		sf.Clips = append(sf.Clips, c)
	}

	return sf, nil
}

func (c Clip) validate() error {
	if c.Start < 0 {
		return fmt.Errorf("start %g is negative", c.Start)
	}
	if c.Start >= c.End {
		return fmt.Errorf("start %g is not before end %g", c.Start, c.End)
	}
	return nil
}

// Save writes the save file as indented JSON with a trailing newline.
// A nil clip slice is written as an empty array; sf is not modified.
func Save(path string, sf *SaveFile) error {
	out := SaveFile{Clips: sf.Clips}
	if out.Clips == nil {
		out.Clips = []Clip{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save file: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}
