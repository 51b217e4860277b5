package api

import (
	"context"
	"io"
	"mime"
	"net/http"

	"loopa-cli/internal/app/errors"
)

// ExportFormat is a server-side export format.
type ExportFormat string

const (
	ExportTXT  ExportFormat = "txt"
	ExportDOCX ExportFormat = "docx"
)

// ExportDownload is a downloaded export blob with the filename the server
// suggested for it.
type ExportDownload struct {
	Filename string
	Data     []byte
}

// Export downloads the task's transcript in the requested format. The
// filename comes from the Content-Disposition header, falling back to
// "transcript.<format>" when the header is absent or unparseable.
func (c *Client) Export(ctx context.Context, taskID string, format ExportFormat) (*ExportDownload, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/tasks/"+taskID+"/export?format="+string(format), nil)
	if err != nil {
		return nil, errors.ErrExportFailed
	}
	resp, err := c.do(req, errors.ErrExportFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ErrExportFailed
	}

	return &ExportDownload{
		Filename: exportFilename(resp.Header.Get("Content-Disposition"), format),
		Data:     data,
	}, nil
}

// exportFilename extracts filename="..." from a Content-Disposition value.
func exportFilename(disposition string, format ExportFormat) string {
	fallback := "transcript." + string(format)
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}
