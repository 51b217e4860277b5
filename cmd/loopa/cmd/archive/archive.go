package archive

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
	archsqlite "loopa-cli/internal/app/archive/sqlite"
)

// Cmd represents the archive command
var Cmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse locally archived transcripts",
	Long: `Browse locally archived transcripts

Finished transcripts watched with 'loopa watch' are saved to a local sqlite
archive and stay readable offline, even after the server-side task is deleted.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived transcripts",
	Run: func(cmd *cobra.Command, args []string) {
		dao := openArchive()
		defer dao.Close()

		records, err := dao.List()
		if err != nil {
			cmdutil.Fail(err)
		}
		if len(records) == 0 {
			fmt.Println("Archive is empty.")
			return
		}
		for _, r := range records {
			fmt.Printf("%s  %s  (archived %s)\n",
				r.TaskID, r.OriginalName, r.ArchivedAt.Format(time.RFC3339))
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <taskId>",
	Short: "Print an archived transcript",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dao := openArchive()
		defer dao.Close()

		record, err := dao.Get(args[0])
		if err != nil {
			cmdutil.Fail(err)
		}

		fmt.Printf("%s (archived %s)\n\n", record.OriginalName, record.ArchivedAt.Format(time.RFC3339))
		if len(record.Segments) > 0 {
			cmdutil.RenderSpeakers(os.Stdout, record.Segments)
			cmdutil.RenderTranscript(os.Stdout, record.Segments, true)
		} else {
			fmt.Println(record.Transcript)
		}
	},
}

func openArchive() *archsqlite.SQLiteArchive {
	deps := cmdutil.Bootstrap()
	path, err := deps.Config.ArchivePath()
	if err != nil {
		cmdutil.Fail(err)
	}
	dao, err := archsqlite.Open(path)
	if err != nil {
		cmdutil.Fail(err)
	}
	return dao
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
}
