package cmdutil

import (
	"fmt"
	"io"

	"loopa-cli/internal/app/export"
	"loopa-cli/internal/app/model"
	"loopa-cli/internal/app/segment"
)

// RenderTranscript prints the grouped-by-speaker transcript view: maximal
// same-speaker runs in order, filler segments hidden when showFillers is off,
// speaker labels only when more than one speaker is present.
func RenderTranscript(w io.Writer, segments []model.Segment, showFillers bool) {
	speakers := segment.Speakers(segments)
	labels := make(map[string]string, len(speakers))
	for _, sp := range speakers {
		labels[sp.ID] = segment.DisplayName(sp)
	}

	for _, run := range segment.GroupRuns(segments) {
		visible := segment.VisibleSegments(run.Segments, showFillers)
		if len(visible) == 0 {
			continue
		}
		if run.SpeakerID != "" && len(speakers) > 1 {
			fmt.Fprintf(w, "%s:\n", labels[run.SpeakerID])
		}
		for _, seg := range visible {
			marker := " "
			if seg.IsCorrected {
				marker = "*"
			}
			fmt.Fprintf(w, "  [%s - %s]%s %s\n",
				export.FormatTimestamp(seg.StartTime),
				export.FormatTimestamp(seg.EndTime),
				marker, seg.Text)
		}
		fmt.Fprintln(w)
	}
}

// RenderSpeakers prints the distinct speakers with their stable colors.
func RenderSpeakers(w io.Writer, segments []model.Segment) {
	speakers := segment.Speakers(segments)
	if len(speakers) <= 1 {
		return
	}
	fmt.Fprintln(w, "Speakers:")
	for _, sp := range speakers {
		fmt.Fprintf(w, "  %s (%s, %s)\n", segment.DisplayName(sp), sp.ID, sp.Color())
	}
	fmt.Fprintln(w)
}

// RenderStatus prints one status line for a task.
func RenderStatus(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "%s  %s (%s)\n", t.OriginalName, t.Status, t.Status.Name())
}
