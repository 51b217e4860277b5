package project

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loopa-cli/cmd/loopa/cmdutil"
)

var description string

// Cmd represents the project command
var Cmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects that group uploads",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		projects, err := deps.Client.ListProjects(context.Background())
		if err != nil {
			cmdutil.Fail(err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects yet.")
			return
		}
		for _, p := range projects {
			desc := ""
			if p.Description != nil {
				desc = " — " + *p.Description
			}
			fmt.Printf("%s  %s (%d files)%s\n", p.ID, p.Name, p.FileCount, desc)
		}
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		p, err := deps.Client.CreateProject(context.Background(), args[0], description)
		if err != nil {
			cmdutil.Fail(err)
		}
		fmt.Printf("Project created: %s (%s)\n", p.Name, p.ID)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <projectId>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		if err := deps.Client.DeleteProject(context.Background(), args[0]); err != nil {
			cmdutil.Fail(err)
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

var filesCmd = &cobra.Command{
	Use:   "files <projectId>",
	Short: "List the tasks uploaded into a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cmdutil.Bootstrap()

		items, err := deps.Client.ProjectFiles(context.Background(), args[0])
		if err != nil {
			cmdutil.Fail(err)
		}
		if len(items) == 0 {
			fmt.Println("No files in this project.")
			return
		}
		for _, item := range items {
			fmt.Printf("%s  %-12s  %s  (%s)\n", item.ID, item.Status.Name(), item.OriginalName, item.UploadedAt)
		}
	},
}

func init() {
	createCmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(filesCmd)
}
