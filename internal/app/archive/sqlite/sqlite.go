package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"loopa-cli/internal/app/archive"
	"loopa-cli/internal/app/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS archived_tasks (
	task_id       TEXT PRIMARY KEY,
	original_name TEXT NOT NULL,
	transcript    TEXT NOT NULL,
	num_speakers  INTEGER NOT NULL DEFAULT 0,
	archived_at   TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS archived_segments (
	task_id      TEXT NOT NULL,
	seq          INTEGER NOT NULL,
	segment_id   TEXT NOT NULL,
	speaker_id   TEXT,
	speaker_name TEXT,
	start_time   INTEGER NOT NULL,
	end_time     INTEGER NOT NULL,
	text         TEXT NOT NULL,
	has_fillers  INTEGER NOT NULL DEFAULT 0,
	is_corrected INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (task_id, seq)
);`

// SQLiteArchive implements archive.DAO on a local sqlite file.
type SQLiteArchive struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive database.
func Open(dbFilePath string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return &SQLiteArchive{db: db}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *SQLiteArchive {
	return &SQLiteArchive{db: db}
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func (a *SQLiteArchive) Save(task model.Task, segments []model.Segment) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO archived_tasks (task_id, original_name, transcript, num_speakers, archived_at)
		 VALUES (?, ?, ?, ?, ?)`,
		task.ID, task.OriginalName, task.Transcript(), task.NumSpeakers, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to archive task: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM archived_segments WHERE task_id = ?`, task.ID); err != nil {
		return fmt.Errorf("failed to replace archived segments: %w", err)
	}
	for i, seg := range segments {
		_, err = tx.Exec(
			`INSERT INTO archived_segments
			 (task_id, seq, segment_id, speaker_id, speaker_name, start_time, end_time, text, has_fillers, is_corrected)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, i, seg.ID, seg.SpeakerID, seg.SpeakerName,
			seg.StartTime, seg.EndTime, seg.Text, seg.HasFillers, seg.IsCorrected,
		)
		if err != nil {
			return fmt.Errorf("failed to archive segment: %w", err)
		}
	}

	return tx.Commit()
}

func (a *SQLiteArchive) List() ([]archive.Record, error) {
	rows, err := a.db.Query(
		`SELECT task_id, original_name, transcript, num_speakers, archived_at
		 FROM archived_tasks
		 ORDER BY archived_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]archive.Record, 0)
	for rows.Next() {
		var r archive.Record
		if err := rows.Scan(&r.TaskID, &r.OriginalName, &r.Transcript, &r.NumSpeakers, &r.ArchivedAt); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (a *SQLiteArchive) Get(taskID string) (*archive.Record, error) {
	var r archive.Record
	err := a.db.QueryRow(
		`SELECT task_id, original_name, transcript, num_speakers, archived_at
		 FROM archived_tasks WHERE task_id = ?`,
		taskID,
	).Scan(&r.TaskID, &r.OriginalName, &r.Transcript, &r.NumSpeakers, &r.ArchivedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not archived: %s", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	rows, err := a.db.Query(
		`SELECT segment_id, speaker_id, speaker_name, start_time, end_time, text, has_fillers, is_corrected
		 FROM archived_segments WHERE task_id = ? ORDER BY seq`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seg model.Segment
		var speakerID, speakerName sql.NullString
		if err := rows.Scan(&seg.ID, &speakerID, &speakerName,
			&seg.StartTime, &seg.EndTime, &seg.Text, &seg.HasFillers, &seg.IsCorrected); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		if speakerID.Valid {
			seg.SpeakerID = &speakerID.String
		}
		if speakerName.Valid {
			seg.SpeakerName = &speakerName.String
		}
		r.Segments = append(r.Segments, seg)
	}
	return &r, rows.Err()
}
