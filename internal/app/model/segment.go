package model

// Segment is a time-bounded span of transcript text attributed to an optional
// speaker. Times are integer milliseconds with EndTime >= StartTime; ordering
// is the server-returned sequence, interpreted as chronological.
type Segment struct {
	ID          string  `json:"id"`
	SpeakerID   *string `json:"speakerId,omitempty"`
	SpeakerName *string `json:"speakerName,omitempty"`
	StartTime   int64   `json:"startTime"`
	EndTime     int64   `json:"endTime"`
	Text        string  `json:"text"`
	HasFillers  bool    `json:"hasFillers"`
	IsCorrected bool    `json:"isCorrected"`
}

// Speaker returns the segment's speaker id, empty when unattributed.
func (s Segment) Speaker() string {
	if s.SpeakerID == nil {
		return ""
	}
	return *s.SpeakerID
}

// Contains reports whether t falls inside the segment's closed time interval.
func (s Segment) Contains(t int64) bool {
	return t >= s.StartTime && t <= s.EndTime
}

// Speaker is a derived identity: speakers are never persisted client-side,
// they are recomputed from the segment list in first-seen order.
type Speaker struct {
	ID      string
	Name    string
	Ordinal int
}

// speakerColors is the cyclic palette; assignment by first-seen ordinal keeps
// colors stable across renders.
var speakerColors = []string{
	"#1677ff", "#52c41a", "#faad14", "#eb2f96",
	"#722ed1", "#13c2c2", "#fa541c", "#2f54eb",
}

// Color returns the speaker's display color.
func (s Speaker) Color() string {
	return SpeakerColor(s.Ordinal)
}

// SpeakerColor maps an ordinal position to the palette, wrapping around.
func SpeakerColor(ordinal int) string {
	if ordinal < 0 {
		ordinal = 0
	}
	return speakerColors[ordinal%len(speakerColors)]
}
