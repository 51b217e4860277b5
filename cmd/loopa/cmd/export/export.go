package export

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
	"loopa-cli/internal/app/api"
	appexport "loopa-cli/internal/app/export"
	"loopa-cli/internal/app/segment"
)

var (
	format     string
	outputPath string
)

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "txt", "export format: txt, docx (server-side) or xlsx (local segment table)")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: the server-suggested filename)")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export <taskId>",
	Short: "Download a task's transcript as txt or docx, or export segments to xlsx",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()
		taskID := args[0]
		ctx := context.Background()

		switch format {
		case "txt", "docx":
			download, err := deps.Client.Export(ctx, taskID, api.ExportFormat(format))
			if err != nil {
				cmdutil.Fail(err)
			}
			path := outputPath
			if path == "" {
				path = download.Filename
			}
			if err := os.WriteFile(path, download.Data, 0o644); err != nil {
				cmdutil.Fail(err)
			}
			fmt.Printf("Export finished, exported file path: %v\n", path)

		case "xlsx":
			collection := segment.NewCollection(deps.Client, nil, deps.Logger)
			if err := collection.Load(ctx, taskID); err != nil {
				cmdutil.Fail(err)
			}
			path := outputPath
			if path == "" {
				path = "transcript.xlsx"
			}
			if err := appexport.SegmentsToExcel(collection.Segments(), path); err != nil {
				cmdutil.Fail(err)
			}
			fmt.Printf("Export finished, exported file path: %v\n", path)

		default:
			cmdutil.Fail(fmt.Errorf("unsupported format: %s", format))
		}
	},
}
