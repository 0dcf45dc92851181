package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/clip-stitch-cli/savefile"
)

func TestClipAddCreatesSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")

	require.NoError(t, clipAddCmd.RunE(clipAddCmd, []string{path, "1:30", "1:45.5"}))

	sf, err := savefile.Load(path)
	require.NoError(t, err)
	require.Len(t, sf.Clips, 1)
	assert.InDelta(t, 90.0, sf.Clips[0].Start, 1e-9)
	assert.InDelta(t, 105.5, sf.Clips[0].End, 1e-9)
}

func TestClipAddAppendsToExistingSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, savefile.Save(path, &savefile.SaveFile{
		Clips: []savefile.Clip{{Start: 0, End: 1}},
	}))

	require.NoError(t, clipAddCmd.RunE(clipAddCmd, []string{path, "5", "8"}))

	sf, err := savefile.Load(path)
	require.NoError(t, err)
	require.Len(t, sf.Clips, 2)
	assert.Equal(t, savefile.Clip{Start: 0, End: 1}, sf.Clips[0])
	assert.Equal(t, savefile.Clip{Start: 5, End: 8}, sf.Clips[1])
}

func TestClipAddRejectsEndBeforeStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")

	err := clipAddCmd.RunE(clipAddCmd, []string{path, "8", "5"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end time must be after start time")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no save file should be written")
}

func TestClipAddUnreadableSaveFileNotClobbered(t *testing.T) {
	// A path whose parent is a regular file makes Stat fail with an error
	// other than "not exist"; the command must refuse rather than write.
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))
	path := filepath.Join(parent, "save.json")

	err := clipAddCmd.RunE(clipAddCmd, []string{path, "0", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to access save file")
}
