package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmd/archive"
	"loopa-cli/cmd/loopa/cmd/audio"
	"loopa-cli/cmd/loopa/cmd/edit"
	"loopa-cli/cmd/loopa/cmd/export"
	"loopa-cli/cmd/loopa/cmd/history"
	"loopa-cli/cmd/loopa/cmd/project"
	"loopa-cli/cmd/loopa/cmd/show"
	"loopa-cli/cmd/loopa/cmd/upload"
	"loopa-cli/cmd/loopa/cmd/version"
	"loopa-cli/cmd/loopa/cmd/watch"
	"loopa-cli/cmd/loopa/cmdutil"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loopa",
	Short: "A command-line client for the Loopa transcription service",
	Long: `A command-line client for the Loopa transcription service.
- Upload audio or video and watch the transcription task until it finishes
- Browse and edit speaker-labeled transcript segments
- Organize uploads into projects and export results
- Completed transcripts are archived locally to sqlite`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(upload.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(show.Cmd)
	rootCmd.AddCommand(edit.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(audio.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(project.Cmd)
	rootCmd.AddCommand(archive.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&cmdutil.Verbose, "verbose", "V", false, "verbose output")
}
