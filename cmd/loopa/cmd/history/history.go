package history

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List uploaded tasks and their statuses",
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		items, err := deps.Client.History(context.Background())
		if err != nil {
			cmdutil.Fail(err)
		}
		if len(items) == 0 {
			fmt.Println("No uploads yet.")
			return
		}
		for _, item := range items {
			fmt.Printf("%s  %-12s  %s  (%s)\n", item.ID, item.Status.Name(), item.OriginalName, item.UploadedAt)
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <taskId>",
	Short: "Delete a task and its stored files",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		if err := deps.Client.DeleteTask(context.Background(), args[0]); err != nil {
			cmdutil.Fail(err)
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

func init() {
	Cmd.AddCommand(deleteCmd)
}
