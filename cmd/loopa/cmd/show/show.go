package show

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
	"loopa-cli/internal/app/export"
	"loopa-cli/internal/app/model"
	"loopa-cli/internal/app/playback"
	"loopa-cli/internal/app/segment"
	"loopa-cli/internal/app/task"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// copyTranscript puts the task's full transcript text on the clipboard.
func copyTranscript(t model.Task) error {
	return clipboardWriteAll(t.Transcript())
}

// activeAt routes the lookup through the playback bridge, the same path a
// player-driven view takes: the reported position feeds the segment query.
func activeAt(segments []model.Segment, ms int64) (model.Segment, bool) {
	position := playback.New()
	position.SetTime(ms)
	return segment.ActiveAt(segments, position.Time())
}

var (
	hideFillers bool
	copyText    bool
	atMs        int64
)

func init() {
	Cmd.Flags().BoolVar(&hideFillers, "hide-fillers", false, "hide segments flagged as containing filler words")
	Cmd.Flags().BoolVar(&copyText, "copy", false, "copy the full transcript text to the clipboard")
	Cmd.Flags().Int64Var(&atMs, "at", -1, "print the segment active at the given playback position (milliseconds)")
}

// Cmd represents the show command
var Cmd = &cobra.Command{
	Use:   "show <taskId>",
	Short: "Print a finished task's transcript grouped by speaker",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()
		taskID := args[0]
		ctx := context.Background()

		store := task.NewStore(deps.Client)
		current, err := store.Load(ctx, taskID)
		if err != nil {
			cmdutil.Fail(fmt.Errorf("%s", store.Err()))
		}

		cmdutil.RenderStatus(os.Stdout, current)
		if current.Status.IsFailure() {
			fmt.Printf("Processing failed: %s\n", current.Error())
			os.Exit(1)
		}
		if !current.Status.IsSuccess() {
			fmt.Println("Transcription is still running; try 'loopa watch'.")
			return
		}

		collection := segment.NewCollection(deps.Client, nil, deps.Logger)
		if err := collection.Load(ctx, taskID); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		segments := collection.Segments()

		if atMs >= 0 {
			if active, ok := activeAt(segments, atMs); ok {
				fmt.Printf("Active at %s: [%s] %s\n",
					export.FormatTimestamp(atMs), active.ID, active.Text)
			} else {
				fmt.Printf("No segment active at %s\n", export.FormatTimestamp(atMs))
			}
			return
		}

		fmt.Println()
		if len(segments) > 0 {
			cmdutil.RenderSpeakers(os.Stdout, segments)
			cmdutil.RenderTranscript(os.Stdout, segments, !hideFillers)
		} else {
			fmt.Println(current.Transcript())
		}

		if copyText {
			if err := copyTranscript(current); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to copy to clipboard: %v\n", err)
				return
			}
			fmt.Println("Transcript copied to clipboard.")
		}
	},
}
