package cli

import (
	"fmt"
	"strings"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Manage workspaces",
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new workspace and make it current",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWorkspaceCreate,
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	RunE:  runWorkspaceList,
}

var workspaceUseCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Switch the current workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceUse,
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a workspace and all its boards",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceDelete,
}

var workspaceRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a workspace",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runWorkspaceRename,
}

func init() {
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceUseCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
	workspaceCmd.AddCommand(workspaceRenameCmd)
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ws := s.CreateWorkspace(strings.Join(args, " "))
	fmt.Printf("Created workspace %s (%s)\n", ws.Name, shortID(ws.ID))
	return nil
}

func runWorkspaceList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc := s.Snapshot()
	if len(doc.Workspaces) == 0 {
		fmt.Println("No workspaces.")
		return nil
	}
	for _, ws := range doc.Workspaces {
		marker := " "
		if ws.ID == doc.CurrentWorkspaceID {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-24s %d boards, %d members\n",
			marker, shortID(ws.ID), ws.Name, len(ws.Boards), len(ws.Members))
	}
	return nil
}

func runWorkspaceUse(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveWorkspaceID(s, args[0])
	if err != nil {
		return err
	}
	s.SetCurrentWorkspace(id)
	fmt.Printf("Current workspace is now %s\n", shortID(id))
	return nil
}

func runWorkspaceDelete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveWorkspaceID(s, args[0])
	if err != nil {
		return err
	}
	s.DeleteWorkspace(id)
	fmt.Printf("Deleted workspace %s\n", shortID(id))
	return nil
}

func runWorkspaceRename(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveWorkspaceID(s, args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	s.UpdateWorkspace(id, model.WorkspacePatch{Name: model.Ptr(name)})
	fmt.Printf("Renamed workspace %s to %q\n", shortID(id), name)
	return nil
}
