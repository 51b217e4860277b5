package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"loopa-cli/internal/app/model"
)

func renderFixture() []model.Segment {
	spk1, spk2 := "spk-1", "spk-2"
	name := "Анна"
	return []model.Segment{
		{ID: "seg-1", SpeakerID: &spk1, StartTime: 0, EndTime: 4200, Text: "Всем привет."},
		{ID: "seg-2", SpeakerID: &spk1, StartTime: 4200, EndTime: 6900, Text: "Ну, э-э, поехали.", HasFillers: true},
		{ID: "seg-3", SpeakerID: &spk2, SpeakerName: &name, StartTime: 6900, EndTime: 12400, Text: "Отлично.", IsCorrected: true},
	}
}

func TestRenderTranscript(t *testing.T) {
	var buf bytes.Buffer
	RenderTranscript(&buf, renderFixture(), true)
	out := buf.String()

	assert.Contains(t, out, "Спикер 1:")
	assert.Contains(t, out, "Анна:")
	assert.Contains(t, out, "[0:00 - 0:04]  Всем привет.")
	assert.Contains(t, out, "Ну, э-э, поехали.")
	assert.Contains(t, out, "[0:06 - 0:12]* Отлично.", "corrected segments carry the marker")
}

func TestRenderTranscriptHidesFillers(t *testing.T) {
	var buf bytes.Buffer
	RenderTranscript(&buf, renderFixture(), false)
	out := buf.String()

	assert.NotContains(t, out, "поехали")
	assert.Contains(t, out, "Всем привет.")
}

func TestRenderTranscriptSingleSpeakerSkipsLabels(t *testing.T) {
	spk := "spk-1"
	segments := []model.Segment{
		{ID: "seg-1", SpeakerID: &spk, StartTime: 0, EndTime: 1000, Text: "Монолог."},
	}

	var buf bytes.Buffer
	RenderTranscript(&buf, segments, true)
	assert.NotContains(t, buf.String(), "Спикер 1:")
	assert.Contains(t, buf.String(), "Монолог.")
}

func TestRenderSpeakers(t *testing.T) {
	var buf bytes.Buffer
	RenderSpeakers(&buf, renderFixture())
	out := buf.String()

	assert.Contains(t, out, "Speakers:")
	assert.Contains(t, out, "Спикер 1 (spk-1, #1677ff)")
	assert.Contains(t, out, "Анна (spk-2, #52c41a)")

	// A single-speaker transcript prints nothing.
	buf.Reset()
	RenderSpeakers(&buf, renderFixture()[:2])
	assert.Empty(t, buf.String())
}
