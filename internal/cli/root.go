package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskhub",
	Short: "Local-first project boards",
	Long:  "taskhub — workspaces, boards, tasks and groups in your terminal.\nState lives in a local store; nothing leaves your machine.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(uiCmd)
}
