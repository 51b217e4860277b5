package devserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"loopa-cli/internal/app/model"
)

// Store is the dev server's in-memory state. Uploaded tasks progress
// pending -> processing -> done on timers, so the client's polling loop has
// something realistic to chew on without the real backend.
type Store struct {
	mu           sync.Mutex
	tasks        map[string]*stubTask
	order        []string
	projects     map[string]*model.Project
	projectFiles map[string][]string

	processingAfter time.Duration
	doneAfter       time.Duration
}

type stubTask struct {
	task       model.Task
	segments   []model.Segment
	projectID  string
	uploadedAt time.Time
}

// NewStore creates a store whose tasks start processing after processingAfter
// and complete after doneAfter (measured from upload).
func NewStore(processingAfter, doneAfter time.Duration) *Store {
	return &Store{
		tasks:           make(map[string]*stubTask),
		projects:        make(map[string]*model.Project),
		projectFiles:    make(map[string][]string),
		processingAfter: processingAfter,
		doneAfter:       doneAfter,
	}
}

// CreateTask registers an upload and schedules its status progression.
func (s *Store) CreateTask(originalName, projectID string) string {
	id := uuid.New().String()
	now := time.Now().UTC()

	s.mu.Lock()
	s.tasks[id] = &stubTask{
		task: model.Task{
			ID:           id,
			Status:       model.StatusPending,
			OriginalName: originalName,
			CreatedAt:    now.Format(time.RFC3339),
		},
		projectID:  projectID,
		uploadedAt: now,
	}
	s.order = append(s.order, id)
	if projectID != "" {
		s.projectFiles[projectID] = append(s.projectFiles[projectID], id)
	}
	s.mu.Unlock()

	time.AfterFunc(s.processingAfter, func() { s.advance(id, model.StatusProcessing) })
	time.AfterFunc(s.doneAfter, func() { s.complete(id) })
	return id
}

func (s *Store) advance(id string, status model.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[id]
	if !ok || st.task.Status.IsTerminal() {
		return
	}
	st.task.Status = status
}

func (s *Store) complete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[id]
	if !ok || st.task.Status.IsTerminal() {
		return
	}
	st.segments = cannedSegments()
	transcript := ""
	for i, seg := range st.segments {
		if i > 0 {
			transcript += " "
		}
		transcript += seg.Text
	}
	completed := time.Now().UTC().Format(time.RFC3339)
	st.task.Status = model.StatusDone
	st.task.TranscriptText = &transcript
	st.task.CompletedAt = &completed
	st.task.NumSpeakers = 2
}

// Task returns a copy of the task.
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[id]
	if !ok {
		return model.Task{}, false
	}
	return st.task, true
}

// Segments returns a copy of the task's segments.
func (s *Store) Segments(id string) ([]model.Segment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	out := make([]model.Segment, len(st.segments))
	copy(out, st.segments)
	return out, true
}

// UpdateSegmentText edits one segment's text, marking it corrected.
func (s *Store) UpdateSegmentText(taskID, segmentID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[taskID]
	if !ok {
		return false
	}
	for i := range st.segments {
		if st.segments[i].ID == segmentID {
			st.segments[i].Text = text
			st.segments[i].IsCorrected = true
			return true
		}
	}
	return false
}

// UpdateSpeakerName renames a speaker across the task's segments.
func (s *Store) UpdateSpeakerName(taskID, speakerID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[taskID]
	if !ok {
		return false
	}
	renamed := false
	for i := range st.segments {
		if st.segments[i].Speaker() == speakerID {
			n := name
			st.segments[i].SpeakerName = &n
			renamed = true
		}
	}
	return renamed
}

// History lists tasks newest first.
func (s *Store) History() []model.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.HistoryItem, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		st := s.tasks[s.order[i]]
		if st == nil {
			continue
		}
		items = append(items, model.HistoryItem{
			ID:           st.task.ID,
			OriginalName: st.task.OriginalName,
			Status:       st.task.Status,
			UploadedAt:   st.uploadedAt.Format(time.RFC3339),
		})
	}
	return items
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// CreateProject registers a project.
func (s *Store) CreateProject(name, description string) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    "active",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if description != "" {
		p.Description = &description
	}
	s.projects[p.ID] = &p
	return p
}

// Projects lists projects with live file counts.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, 0, len(s.projects))
	for id, p := range s.projects {
		cp := *p
		cp.FileCount = len(s.projectFiles[id])
		out = append(out, cp)
	}
	return out
}

// Project returns one project.
func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, false
	}
	cp := *p
	cp.FileCount = len(s.projectFiles[id])
	return cp, true
}

// DeleteProject removes a project, leaving its tasks in place.
func (s *Store) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false
	}
	delete(s.projects, id)
	delete(s.projectFiles, id)
	return true
}

// ProjectFiles lists the tasks uploaded into a project.
func (s *Store) ProjectFiles(id string) ([]model.HistoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return nil, false
	}
	items := make([]model.HistoryItem, 0)
	for _, taskID := range s.projectFiles[id] {
		st := s.tasks[taskID]
		if st == nil {
			continue
		}
		items = append(items, model.HistoryItem{
			ID:           st.task.ID,
			OriginalName: st.task.OriginalName,
			Status:       st.task.Status,
			UploadedAt:   st.uploadedAt.Format(time.RFC3339),
		})
	}
	return items, true
}

func cannedSegments() []model.Segment {
	spk1, spk2 := "spk-1", "spk-2"
	mk := func(i int, spk *string, start, end int64, text string, fillers bool) model.Segment {
		return model.Segment{
			ID:         fmt.Sprintf("seg-%d", i),
			SpeakerID:  spk,
			StartTime:  start,
			EndTime:    end,
			Text:       text,
			HasFillers: fillers,
		}
	}
	return []model.Segment{
		mk(1, &spk1, 0, 4200, "Всем привет, начнём со статуса по проекту.", false),
		mk(2, &spk1, 4200, 6900, "Ну, э-э, в общем, двигаемся по плану.", true),
		mk(3, &spk2, 6900, 12400, "Отлично. Какие остались открытые вопросы?", false),
		mk(4, &spk1, 12400, 18000, "Осталось согласовать сроки и бюджет.", false),
	}
}
