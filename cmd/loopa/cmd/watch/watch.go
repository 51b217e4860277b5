package watch

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
	archsqlite "loopa-cli/internal/app/archive/sqlite"
	"loopa-cli/internal/app/model"
	"loopa-cli/internal/app/segment"
	"loopa-cli/internal/app/task"
)

var noArchive bool

func init() {
	Cmd.Flags().BoolVar(&noArchive, "no-archive", false, "skip saving the finished transcript to the local archive")
}

// Cmd represents the watch command
var Cmd = &cobra.Command{
	Use:   "watch <taskId>",
	Short: "Poll a transcription task until it finishes, then print the transcript",
	Long: `Poll a transcription task until it finishes, then print the transcript

The task is fetched every 2.5 seconds until it reaches a terminal status.
On success the transcript is printed grouped by speaker and saved to the
local archive; on failure the server's error message is shown.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()
		taskID := args[0]
		ctx := context.Background()

		store := task.NewStore(deps.Client)
		poller := task.NewPoller(store, deps.Config.PollInterval, deps.Logger, nil)

		lastStatus := model.Status("")
		poller.OnUpdate = func(t model.Task) {
			if t.Status != lastStatus {
				lastStatus = t.Status
				cmdutil.RenderStatus(os.Stdout, t)
			}
		}

		finished, err := poller.Run(ctx, taskID)
		if err != nil {
			if msg := store.Err(); msg != "" {
				cmdutil.Fail(fmt.Errorf("%s", msg))
			}
			cmdutil.Fail(err)
		}

		if finished.Status.IsFailure() {
			fmt.Printf("Processing failed: %s\n", finished.Error())
			os.Exit(1)
		}

		collection := segment.NewCollection(deps.Client, func(notice string) {
			fmt.Fprintln(os.Stderr, notice)
		}, deps.Logger)
		if err := collection.Load(ctx, taskID); err != nil {
			// The transcript text still exists even when segments are missing.
			fmt.Fprintln(os.Stderr, err)
		}

		segments := collection.Segments()
		fmt.Println()
		if len(segments) > 0 {
			cmdutil.RenderSpeakers(os.Stdout, segments)
			cmdutil.RenderTranscript(os.Stdout, segments, true)
		} else {
			fmt.Println(finished.Transcript())
		}

		if !noArchive {
			saveToArchive(deps, finished, segments)
		}
	},
}

func saveToArchive(deps *cmdutil.Deps, finished model.Task, segments []model.Segment) {
	path, err := deps.Config.ArchivePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Archive unavailable: %v\n", err)
		return
	}
	dao, err := archsqlite.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Archive unavailable: %v\n", err)
		return
	}
	defer dao.Close()
	if err := dao.Save(finished, segments); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to archive transcript: %v\n", err)
		return
	}
	fmt.Printf("Archived locally (loopa archive show %s)\n", finished.ID)
}
