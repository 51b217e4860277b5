package devserver

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopa-cli/internal/app/api"
	"loopa-cli/internal/app/segment"
	"loopa-cli/internal/app/task"
)

func newTestSetup(t *testing.T) *api.Client {
	t.Helper()
	server := NewServer(Config{
		ProcessingAfter: 20 * time.Millisecond,
		DoneAfter:       60 * time.Millisecond,
	}, nil)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return api.NewClient(api.Config{BaseURL: ts.URL + "/api", Session: "dev"}, nil)
}

func TestUploadThenPollUntilDone(t *testing.T) {
	client := newTestSetup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taskID, err := client.Upload(ctx, "meeting.mp3", strings.NewReader("fake audio"), "")
	require.NoError(t, err)
	require.NotEmpty(t, taskID)

	store := task.NewStore(client)
	poller := task.NewPoller(store, 10*time.Millisecond, nil, nil)
	final, err := poller.Run(ctx, taskID)
	require.NoError(t, err)

	assert.True(t, final.Status.IsSuccess())
	assert.Equal(t, "meeting.mp3", final.OriginalName)
	assert.NotEmpty(t, final.Transcript())
	assert.Equal(t, 2, final.NumSpeakers)
	require.NotNil(t, final.CompletedAt)
}

func TestSegmentEditingRoundTrip(t *testing.T) {
	client := newTestSetup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taskID, err := client.Upload(ctx, "meeting.mp3", strings.NewReader("fake audio"), "")
	require.NoError(t, err)

	store := task.NewStore(client)
	_, err = task.NewPoller(store, 10*time.Millisecond, nil, nil).Run(ctx, taskID)
	require.NoError(t, err)

	collection := segment.NewCollection(client, nil, nil)
	require.NoError(t, collection.Load(ctx, taskID))
	require.Equal(t, 4, collection.Len())

	collection.EditText(ctx, "seg-2", "Двигаемся по плану.")
	collection.RenameSpeaker(ctx, "spk-2", "Анна")
	collection.WaitConfirms()

	// The edits survived the round trip to the server.
	fetched, err := client.GetSegments(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, "Двигаемся по плану.", fetched[1].Text)
	assert.True(t, fetched[1].IsCorrected)
	require.NotNil(t, fetched[2].SpeakerName)
	assert.Equal(t, "Анна", *fetched[2].SpeakerName)

	speakers := segment.Speakers(fetched)
	require.Len(t, speakers, 2)
	assert.Equal(t, "Спикер 1", segment.DisplayName(speakers[0]))
	assert.Equal(t, "Анна", segment.DisplayName(speakers[1]))
}

func TestExportAttachment(t *testing.T) {
	client := newTestSetup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taskID, err := client.Upload(ctx, "meeting.mp3", strings.NewReader("fake audio"), "")
	require.NoError(t, err)

	// Export before completion is refused.
	_, err = client.Export(ctx, taskID, api.ExportTXT)
	require.Error(t, err)

	store := task.NewStore(client)
	final, err := task.NewPoller(store, 10*time.Millisecond, nil, nil).Run(ctx, taskID)
	require.NoError(t, err)

	download, err := client.Export(ctx, taskID, api.ExportTXT)
	require.NoError(t, err)
	assert.Equal(t, "meeting.mp3.txt", download.Filename)
	assert.Equal(t, final.Transcript(), string(download.Data))
}

func TestAudioStream(t *testing.T) {
	client := newTestSetup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taskID, err := client.Upload(ctx, "meeting.mp3", strings.NewReader("fake audio"), "")
	require.NoError(t, err)

	stream, err := client.GetAudio(ctx, taskID)
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("RIFF")), "audio should be a WAV blob")
}

func TestHistoryAndDelete(t *testing.T) {
	client := newTestSetup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first, err := client.Upload(ctx, "a.mp3", strings.NewReader("x"), "")
	require.NoError(t, err)
	second, err := client.Upload(ctx, "b.mp3", strings.NewReader("x"), "")
	require.NoError(t, err)

	items, err := client.History(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0].ID, "newest first")
	assert.Equal(t, first, items[1].ID)

	require.NoError(t, client.DeleteTask(ctx, first))
	_, err = client.GetTask(ctx, first)
	require.Error(t, err)
}

func TestProjectLifecycle(t *testing.T) {
	client := newTestSetup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	project, err := client.CreateProject(ctx, "Интервью", "серия интервью")
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)
	require.NotNil(t, project.Description)

	taskID, err := client.Upload(ctx, "ep1.mp3", strings.NewReader("x"), project.ID)
	require.NoError(t, err)

	files, err := client.ProjectFiles(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, taskID, files[0].ID)

	fetched, err := client.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.FileCount)

	require.NoError(t, client.DeleteProject(ctx, project.ID))
	_, err = client.ProjectFiles(ctx, project.ID)
	require.Error(t, err)

	// Deleting the project leaves its tasks alone.
	_, err = client.GetTask(ctx, taskID)
	assert.NoError(t, err)
}

func TestUploadIntoUnknownProject(t *testing.T) {
	client := newTestSetup(t)
	_, err := client.Upload(context.Background(), "a.mp3", strings.NewReader("x"), "proj-404")
	require.Error(t, err)
	assert.Equal(t, "project not found", err.Error())
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(Config{}, nil)
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}
