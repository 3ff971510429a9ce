package cli

import (
	"fmt"
	"strings"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/spf13/cobra"
)

var groupBoardFlag string

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage task groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a group on the current board",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupCreate,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups on the current board",
	RunE:  runGroupList,
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename [group] [title]",
	Short: "Rename a group",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runGroupRename,
}

var groupToggleCmd = &cobra.Command{
	Use:   "toggle [group]",
	Short: "Expand or collapse a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupToggle,
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete [group]",
	Short: "Delete a group, moving its tasks back to ungrouped",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupDelete,
}

func init() {
	groupCmd.PersistentFlags().StringVarP(&groupBoardFlag, "board", "b", "", "Board (defaults to current)")

	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupRenameCmd)
	groupCmd.AddCommand(groupToggleCmd)
	groupCmd.AddCommand(groupDeleteCmd)
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, groupBoardFlag)
	if err != nil {
		return err
	}
	g, ok := s.CreateGroup(b.ID, strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("board vanished while creating group")
	}
	fmt.Printf("Created group %s (%s)\n", g.Title, shortID(g.ID))
	return nil
}

func runGroupList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, groupBoardFlag)
	if err != nil {
		return err
	}
	if len(b.Groups) == 0 {
		fmt.Println("No groups.")
		return nil
	}
	for _, g := range b.Groups {
		state := "collapsed"
		if g.IsExpanded {
			state = "expanded"
		}
		fmt.Printf("%-12s %-24s %-9s %d tasks\n", shortID(g.ID), g.Title, state, len(g.TaskIDs))
	}
	fmt.Printf("%s%d ungrouped%s\n", colorDim, len(b.UngroupedTaskIDs), colorReset)
	return nil
}

func runGroupRename(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, groupBoardFlag)
	if err != nil {
		return err
	}
	id, err := resolveGroupID(b, args[0])
	if err != nil {
		return err
	}
	title := strings.Join(args[1:], " ")
	s.UpdateGroup(b.ID, id, model.GroupPatch{Title: model.Ptr(title)})
	fmt.Printf("Renamed group %s to %q\n", shortID(id), title)
	return nil
}

func runGroupToggle(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, groupBoardFlag)
	if err != nil {
		return err
	}
	id, err := resolveGroupID(b, args[0])
	if err != nil {
		return err
	}
	s.ToggleGroupExpanded(b.ID, id)
	fmt.Printf("Toggled group %s\n", shortID(id))
	return nil
}

func runGroupDelete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, groupBoardFlag)
	if err != nil {
		return err
	}
	id, err := resolveGroupID(b, args[0])
	if err != nil {
		return err
	}
	s.DeleteGroup(b.ID, id)
	fmt.Printf("Deleted group %s (its tasks are now ungrouped)\n", shortID(id))
	return nil
}
