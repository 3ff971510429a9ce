package cli

import (
	"fmt"
	"strings"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/spf13/cobra"
)

var (
	taskBoardFlag    string
	taskColumnFlag   string
	taskStatusFlag   string
	taskPriorityFlag string
	taskDueFlag      string
	taskAssignFlag   []string
	taskDescFlag     string
	taskTitleFlag    string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a task on the current board",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskCreate,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks on the current board",
	RunE:  runTaskList,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [task]",
	Short: "Update a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move [task] [group]",
	Short: "Move a task into a group (use \"-\" for ungrouped)",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	taskCreateCmd.Flags().StringVarP(&taskBoardFlag, "board", "b", "", "Board (defaults to current)")
	taskCreateCmd.Flags().StringVarP(&taskColumnFlag, "column", "c", "", "Column (defaults to the board's first column)")
	taskCreateCmd.Flags().StringVarP(&taskStatusFlag, "status", "s", "", "Initial status")
	taskCreateCmd.Flags().StringVarP(&taskPriorityFlag, "priority", "p", "", "Priority: low, medium or high")
	taskCreateCmd.Flags().StringVar(&taskDueFlag, "due", "", "Due date (YYYY-MM-DD)")
	taskCreateCmd.Flags().StringSliceVarP(&taskAssignFlag, "assign", "a", nil, "Assignee user ids")
	taskCreateCmd.Flags().StringVarP(&taskDescFlag, "desc", "d", "", "Description")

	taskListCmd.Flags().StringVarP(&taskBoardFlag, "board", "b", "", "Board (defaults to current)")
	taskListCmd.Flags().StringVarP(&taskStatusFlag, "status", "s", "", "Only show tasks with this status")

	taskUpdateCmd.Flags().StringVarP(&taskTitleFlag, "title", "t", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskDescFlag, "desc", "d", "", "New description")
	taskUpdateCmd.Flags().StringVarP(&taskStatusFlag, "status", "s", "", "New status")
	taskUpdateCmd.Flags().StringVarP(&taskPriorityFlag, "priority", "p", "", "New priority")
	taskUpdateCmd.Flags().StringVar(&taskDueFlag, "due", "", "New due date (YYYY-MM-DD)")
	taskUpdateCmd.Flags().StringSliceVarP(&taskAssignFlag, "assign", "a", nil, "Replace assignee list")
	taskUpdateCmd.Flags().StringVarP(&taskColumnFlag, "column", "c", "", "Move to column")

	taskMoveCmd.Flags().StringVarP(&taskBoardFlag, "board", "b", "", "Board (defaults to current)")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func parsePriority(arg string) (model.Priority, error) {
	p := model.Priority(arg)
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("priority must be low, medium or high, got %q", arg)
	}
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, taskBoardFlag)
	if err != nil {
		return err
	}

	columnID := ""
	if taskColumnFlag != "" {
		columnID, err = resolveColumnID(b, taskColumnFlag)
		if err != nil {
			return err
		}
	} else if len(b.Columns) > 0 {
		columnID = sortColumns(b.Columns)[0].ID
	}

	proto := model.Task{
		Title:       strings.Join(args, " "),
		Description: taskDescFlag,
		Status:      taskStatusFlag,
		DueDate:     taskDueFlag,
		Assignees:   taskAssignFlag,
	}
	if taskPriorityFlag != "" {
		p, err := parsePriority(taskPriorityFlag)
		if err != nil {
			return err
		}
		proto.Priority = p
	}

	t, ok := s.CreateTask(b.ID, columnID, proto)
	if !ok {
		return fmt.Errorf("board vanished while creating task")
	}
	fmt.Printf("Created task %s (%s) on board %s\n", t.Title, shortID(t.ID), b.Title)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, taskBoardFlag)
	if err != nil {
		return err
	}
	if len(b.Tasks) == 0 {
		fmt.Printf("No tasks. Run: %staskhub task create \"title\"%s\n", colorCyan, colorReset)
		return nil
	}
	for _, t := range b.Tasks {
		if taskStatusFlag != "" && t.Status != taskStatusFlag {
			continue
		}
		printTaskLine(s, t)
	}
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveTaskID(s, args[0])
	if err != nil {
		return err
	}

	var patch model.TaskPatch
	changed := false
	if cmd.Flags().Changed("title") {
		patch.Title = model.Ptr(taskTitleFlag)
		changed = true
	}
	if cmd.Flags().Changed("desc") {
		patch.Description = model.Ptr(taskDescFlag)
		changed = true
	}
	if cmd.Flags().Changed("status") {
		patch.Status = model.Ptr(taskStatusFlag)
		changed = true
	}
	if cmd.Flags().Changed("priority") {
		p, err := parsePriority(taskPriorityFlag)
		if err != nil {
			return err
		}
		patch.Priority = model.Ptr(p)
		changed = true
	}
	if cmd.Flags().Changed("due") {
		patch.DueDate = model.Ptr(taskDueFlag)
		changed = true
	}
	if cmd.Flags().Changed("assign") {
		patch.Assignees = model.Ptr(append([]string(nil), taskAssignFlag...))
		changed = true
	}
	if cmd.Flags().Changed("column") {
		doc := s.Snapshot()
		for _, ws := range doc.Workspaces {
			for i := range ws.Boards {
				for _, t := range ws.Boards[i].Tasks {
					if t.ID == id {
						colID, err := resolveColumnID(&ws.Boards[i], taskColumnFlag)
						if err != nil {
							return err
						}
						patch.ColumnID = model.Ptr(colID)
						changed = true
					}
				}
			}
		}
	}
	if !changed {
		return fmt.Errorf("nothing to update: pass at least one flag")
	}

	s.UpdateTask(id, patch)
	fmt.Printf("Updated task %s\n", shortID(id))
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, taskBoardFlag)
	if err != nil {
		return err
	}
	taskID, err := resolveTaskID(s, args[0])
	if err != nil {
		return err
	}

	groupID := ""
	if args[1] != "-" {
		groupID, err = resolveGroupID(b, args[1])
		if err != nil {
			return err
		}
	}
	s.MoveTaskToGroup(b.ID, taskID, groupID)
	if groupID == "" {
		fmt.Printf("Moved task %s to ungrouped\n", shortID(taskID))
	} else {
		fmt.Printf("Moved task %s to group %s\n", shortID(taskID), shortID(groupID))
	}
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveTaskID(s, args[0])
	if err != nil {
		return err
	}
	s.DeleteTask(id)
	fmt.Printf("Deleted task %s\n", shortID(id))
	return nil
}
