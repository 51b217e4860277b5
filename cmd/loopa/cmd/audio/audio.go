package audio

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
)

var outputPath string

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path")
	Cmd.MarkFlagRequired("output")
}

// Cmd represents the audio command
var Cmd = &cobra.Command{
	Use:   "audio <taskId>",
	Short: "Download a task's source audio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		stream, err := deps.Client.GetAudio(context.Background(), args[0])
		if err != nil {
			cmdutil.Fail(err)
		}
		defer stream.Close()

		out, err := os.Create(outputPath)
		if err != nil {
			cmdutil.Fail(err)
		}
		defer out.Close()

		written, err := io.Copy(out, stream)
		if err != nil {
			cmdutil.Fail(err)
		}
		fmt.Printf("Saved %d bytes to %s\n", written, outputPath)
	},
}
