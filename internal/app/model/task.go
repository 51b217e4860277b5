package model

// Task represents one transcription job tracked by the client. The JSON field
// names follow the Loopa API responses exactly.
type Task struct {
	ID             string  `json:"id"`
	Status         Status  `json:"status"`
	OriginalName   string  `json:"originalName"`
	TranscriptText *string `json:"transcriptText,omitempty"`
	ErrorMessage   *string `json:"errorMessage,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	CompletedAt    *string `json:"completedAt,omitempty"`
	NumSpeakers    int     `json:"numSpeakers,omitempty"`
}

// Transcript returns the transcript text, which is only meaningful once the
// task reached terminal success.
func (t Task) Transcript() string {
	if t.TranscriptText == nil {
		return ""
	}
	return *t.TranscriptText
}

// Error returns the processing error message, meaningful only on terminal
// failure.
func (t Task) Error() string {
	if t.ErrorMessage == nil {
		return ""
	}
	return *t.ErrorMessage
}

// HistoryItem is one row of the upload history listing.
type HistoryItem struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Status       Status `json:"status"`
	UploadedAt   string `json:"uploadedAt"`
}

// Project groups uploads; tasks reference a project id at upload time.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	FileCount   int     `json:"fileCount"`
}
