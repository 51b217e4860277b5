package edit

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
	"loopa-cli/internal/app/model"
	"loopa-cli/internal/app/segment"
)

func hasSegment(segments []model.Segment, id string) bool {
	for _, seg := range segments {
		if seg.ID == id {
			return true
		}
	}
	return false
}

func hasSpeaker(segments []model.Segment, id string) bool {
	for _, seg := range segments {
		if seg.Speaker() == id {
			return true
		}
	}
	return false
}

var (
	segmentID string
	newText   string
	speakerID string
	newName   string
)

func init() {
	Cmd.Flags().StringVarP(&segmentID, "segment", "s", "", "segment id to edit")
	Cmd.Flags().StringVarP(&newText, "text", "t", "", "replacement text for the segment")
	Cmd.Flags().StringVar(&speakerID, "speaker", "", "speaker id to rename")
	Cmd.Flags().StringVarP(&newName, "name", "n", "", "new display name for the speaker")
}

// Cmd represents the edit command
var Cmd = &cobra.Command{
	Use:   "edit <taskId>",
	Short: "Edit a transcript segment's text or rename a speaker",
	Long: `Edit a transcript segment's text or rename a speaker

Edits apply locally first and are confirmed with the server; a failed
confirmation is reported but the edit is kept (re-run to retry).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if (segmentID == "") == (speakerID == "") {
			cmdutil.Fail(fmt.Errorf("specify exactly one of --segment or --speaker"))
		}
		if segmentID != "" && newText == "" {
			cmdutil.Fail(fmt.Errorf("--text is required with --segment"))
		}
		if speakerID != "" && newName == "" {
			cmdutil.Fail(fmt.Errorf("--name is required with --speaker"))
		}

		deps := cmdutil.Bootstrap()
		taskID := args[0]
		ctx := context.Background()

		failed := false
		collection := segment.NewCollection(deps.Client, func(notice string) {
			failed = true
			fmt.Fprintln(os.Stderr, notice)
		}, deps.Logger)
		if err := collection.Load(ctx, taskID); err != nil {
			cmdutil.Fail(err)
		}

		if segmentID != "" {
			if !hasSegment(collection.Segments(), segmentID) {
				cmdutil.Fail(fmt.Errorf("segment not found: %s", segmentID))
			}
			collection.EditText(ctx, segmentID, newText)
		} else {
			if !hasSpeaker(collection.Segments(), speakerID) {
				cmdutil.Fail(fmt.Errorf("speaker not found: %s", speakerID))
			}
			collection.RenameSpeaker(ctx, speakerID, newName)
		}
		collection.WaitConfirms()

		if failed {
			os.Exit(1)
		}
		fmt.Println("Saved.")
	},
}
