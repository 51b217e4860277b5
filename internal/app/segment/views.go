package segment

import (
	"fmt"

	"github.com/samber/lo"

	"loopa-cli/internal/app/model"
)

// Derived views over a segment snapshot. These are stateless query functions
// recomputed on every call; nothing here caches or mutates.

// Run is a maximal run of consecutive segments sharing one speaker.
type Run struct {
	SpeakerID string // empty when unattributed
	Segments  []model.Segment
}

// GroupRuns partitions segments into maximal consecutive same-speaker runs,
// preserving the original order.
func GroupRuns(segments []model.Segment) []Run {
	var runs []Run
	for _, seg := range segments {
		speaker := seg.Speaker()
		if len(runs) == 0 || runs[len(runs)-1].SpeakerID != speaker {
			runs = append(runs, Run{SpeakerID: speaker})
		}
		last := &runs[len(runs)-1]
		last.Segments = append(last.Segments, seg)
	}
	return runs
}

// Speakers returns the distinct attributed speakers in first-seen order. The
// ordinal drives the stable color assignment.
func Speakers(segments []model.Segment) []model.Speaker {
	attributed := lo.Filter(segments, func(s model.Segment, _ int) bool {
		return s.Speaker() != ""
	})
	firstSeen := lo.UniqBy(attributed, func(s model.Segment) string {
		return s.Speaker()
	})
	return lo.Map(firstSeen, func(s model.Segment, i int) model.Speaker {
		name := ""
		if s.SpeakerName != nil {
			name = *s.SpeakerName
		}
		return model.Speaker{ID: s.Speaker(), Name: name, Ordinal: i}
	})
}

// DisplayName resolves a speaker's label: the assigned name, or a positional
// fallback in the service's own language.
func DisplayName(s model.Speaker) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("Спикер %d", s.Ordinal+1)
}

// ActiveAt returns the segment whose closed [StartTime, EndTime] interval
// contains t. Overlapping ranges should not occur, but when they do the first
// match in order wins; a boundary instant shared by two segments resolves to
// the earlier one.
func ActiveAt(segments []model.Segment, t int64) (model.Segment, bool) {
	for _, seg := range segments {
		if seg.Contains(t) {
			return seg, true
		}
	}
	return model.Segment{}, false
}

// VisibleSegments filters out filler-flagged segments when showFillers is
// off. The underlying collection is untouched, so toggling the flag back on
// restores the original set without a re-fetch.
func VisibleSegments(segments []model.Segment, showFillers bool) []model.Segment {
	if showFillers {
		return segments
	}
	return lo.Filter(segments, func(s model.Segment, _ int) bool {
		return !s.HasFillers
	})
}
