package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"loopa-cli/cmd/loopa/cmdutil"
)

var projectID string

func init() {
	Cmd.Flags().StringVarP(&projectID, "project", "p", "", "attach the upload to a project id")
}

// Cmd represents the upload command
var Cmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an audio or video file for transcription",
	Long: `Upload an audio or video file for transcription

The server answers with a task id; follow it with 'loopa watch <taskId>'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		path := args[0]
		file, err := os.Open(path)
		if err != nil {
			cmdutil.Fail(err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			cmdutil.Fail(err)
		}

		progress := mpb.New(mpb.WithOutput(os.Stderr))
		bar := progress.AddBar(info.Size(),
			mpb.PrependDecorators(
				decor.Name("Uploading "),
				decor.CountersKibiByte("% .1f / % .1f"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
		reader := bar.ProxyReader(file)
		defer reader.Close()

		taskID, err := deps.Client.Upload(context.Background(), filepath.Base(path), reader, projectID)
		progress.Wait()
		if err != nil {
			cmdutil.Fail(err)
		}

		fmt.Printf("Task created: %s\n", taskID)
		fmt.Printf("Follow it at /tasks/%s or run: loopa watch %s\n", taskID, taskID)
	},
}
