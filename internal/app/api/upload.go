package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"loopa-cli/internal/app/errors"
)

// UploadResult carries the id of the task the server created for an upload.
type UploadResult struct {
	TaskID string `json:"taskId"`
}

// Upload sends an audio/video file as multipart form data and returns the id
// of the transcription task created for it. The reader is consumed fully, so
// callers can wrap it with a progress proxy. projectID may be empty.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader, projectID string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.ErrUploadFailed
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", errors.ErrUploadFailed
	}
	if projectID != "" {
		if err := writer.WriteField("projectId", projectID); err != nil {
			return "", errors.ErrUploadFailed
		}
	}
	if err := writer.Close(); err != nil {
		return "", errors.ErrUploadFailed
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/uploads", body)
	if err != nil {
		return "", errors.ErrUploadFailed
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.ErrUploadFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The upload endpoint is the one place the server explains itself;
		// prefer its message over the generic surface.
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != "" {
			return "", errors.New(failure.Error)
		}
		return "", errors.ErrUploadFailed
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.ErrUploadFailed
	}
	return result.TaskID, nil
}
