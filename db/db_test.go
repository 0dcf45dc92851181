package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPathCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.db")
	database, err := OpenPath(path)
	require.NoError(t, err)
	defer database.Close()

	// Opening a second time must be idempotent (migrations re-run safely).
	database2, err := OpenPath(path)
	require.NoError(t, err)
	defer database2.Close()

	renders, err := ListRenders(database2, 10)
	require.NoError(t, err)
	assert.Empty(t, renders)
}

func TestRenderLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	database, err := OpenPath(path)
	require.NoError(t, err)
	defer database.Close()

	started := time.Now().UTC().Truncate(time.Second)
	id, err := InsertRender(database, &Render{
		RunID:        "run-1",
		VideoPath:    "/videos/match.mp4",
		SaveFilePath: "/videos/match.json",
		OutputPath:   "out.mkv",
		ClipCount:    3,
		Duration:     42.5,
		StartedAt:    started,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	require.NoError(t, MarkRenderComplete(database, id, started.Add(10*time.Second), 1024))

	renders, err := ListRenders(database, 10)
	require.NoError(t, err)
	require.Len(t, renders, 1)

	r := renders[0]
	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "/videos/match.mp4", r.VideoPath)
	assert.Equal(t, 3, r.ClipCount)
	assert.InDelta(t, 42.5, r.Duration, 1e-9)
	assert.Equal(t, int64(1024), r.OutputBytes)
	require.NotNil(t, r.FinishedAt)
	assert.Nil(t, r.ErrorAt)
	assert.Empty(t, r.Error)
}

func TestMarkRenderError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	database, err := OpenPath(path)
	require.NoError(t, err)
	defer database.Close()

	id, err := InsertRender(database, &Render{
		RunID:        "run-err",
		VideoPath:    "/videos/match.mp4",
		SaveFilePath: "/videos/match.json",
		OutputPath:   "out.mkv",
		ClipCount:    1,
		StartedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, MarkRenderError(database, id, time.Now().UTC(), "ffmpeg exited with status 1"))

	renders, err := ListRenders(database, 10)
	require.NoError(t, err)
	require.Len(t, renders, 1)
	assert.Nil(t, renders[0].FinishedAt)
	require.NotNil(t, renders[0].ErrorAt)
	assert.Equal(t, "ffmpeg exited with status 1", renders[0].Error)
}

func TestListRendersLimitAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	database, err := OpenPath(path)
	require.NoError(t, err)
	defer database.Close()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		_, err := InsertRender(database, &Render{
			RunID:        "run",
			VideoPath:    "/v.mp4",
			SaveFilePath: "/s.json",
			OutputPath:   "out.mkv",
			ClipCount:    i,
			StartedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	renders, err := ListRenders(database, 3)
	require.NoError(t, err)
	require.Len(t, renders, 3)
	assert.Equal(t, 4, renders[0].ClipCount, "newest run first")
	assert.Equal(t, 2, renders[2].ClipCount)
}
