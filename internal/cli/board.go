package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/store"
	"github.com/spf13/cobra"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

var boardDescription string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

var boardCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a board in the current workspace",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBoardCreate,
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards in the current workspace",
	RunE:  runBoardList,
}

var boardUseCmd = &cobra.Command{
	Use:   "use [board]",
	Short: "Switch the current board",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardUse,
}

var boardShowCmd = &cobra.Command{
	Use:   "show [board]",
	Short: "Show a board's groups and tasks",
	RunE:  runBoardShow,
}

var boardViewCmd = &cobra.Command{
	Use:   "view [board] [list|kanban|calendar]",
	Short: "Set a board's view type",
	Args:  cobra.ExactArgs(2),
	RunE:  runBoardView,
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete [board]",
	Short: "Delete a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardDelete,
}

func init() {
	boardCreateCmd.Flags().StringVarP(&boardDescription, "desc", "d", "", "Board description")

	boardCmd.AddCommand(boardCreateCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardUseCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardViewCmd)
	boardCmd.AddCommand(boardDeleteCmd)
}

func runBoardCreate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ws := s.CurrentWorkspace()
	if ws == nil {
		return fmt.Errorf("no current workspace. Run: taskhub workspace use <workspace>")
	}

	title := strings.Join(args, " ")
	b, ok := s.CreateBoard(ws.ID, title, boardDescription)
	if !ok {
		return fmt.Errorf("workspace vanished while creating board")
	}
	fmt.Printf("Created board %s (%s) with %d default columns\n", b.Title, shortID(b.ID), len(b.Columns))
	return nil
}

func runBoardList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ws := s.CurrentWorkspace()
	if ws == nil {
		return fmt.Errorf("no current workspace")
	}
	if len(ws.Boards) == 0 {
		fmt.Printf("No boards. Run: %staskhub board create \"title\"%s\n", colorCyan, colorReset)
		return nil
	}

	doc := s.Snapshot()
	for _, b := range ws.Boards {
		marker := " "
		if b.ID == doc.CurrentBoardID {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-24s %-8s %d tasks, %d groups\n",
			marker, shortID(b.ID), b.Title, b.ViewType, len(b.Tasks), len(b.Groups))
	}
	return nil
}

func runBoardUse(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveBoardID(s, args[0])
	if err != nil {
		return err
	}
	s.SetCurrentBoard(id)
	fmt.Printf("Current board is now %s\n", shortID(id))
	return nil
}

func runBoardShow(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var b *model.Board
	if len(args) > 0 {
		id, err := resolveBoardID(s, args[0])
		if err != nil {
			return err
		}
		b = s.BoardByID(id)
	} else {
		b, err = currentBoard(s)
		if err != nil {
			return err
		}
	}

	fmt.Printf("%s%s%s", colorBold, b.Title, colorReset)
	if b.Description != "" {
		fmt.Printf("  %s%s%s", colorDim, b.Description, colorReset)
	}
	fmt.Printf("  [%s]\n\n", b.ViewType)

	tasksByID := make(map[string]model.Task, len(b.Tasks))
	for _, t := range b.Tasks {
		tasksByID[t.ID] = t
	}

	for _, g := range b.Groups {
		arrow := "▸"
		if g.IsExpanded {
			arrow = "▾"
		}
		fmt.Printf("%s %s%s%s (%d)\n", arrow, colorBold, g.Title, colorReset, len(g.TaskIDs))
		if g.IsExpanded {
			for _, id := range g.TaskIDs {
				if t, ok := tasksByID[id]; ok {
					printTaskLine(s, t)
				}
			}
		}
		fmt.Println()
	}

	if len(b.UngroupedTaskIDs) > 0 {
		fmt.Printf("%sUngrouped%s (%d)\n", colorDim, colorReset, len(b.UngroupedTaskIDs))
		for _, id := range b.UngroupedTaskIDs {
			if t, ok := tasksByID[id]; ok {
				printTaskLine(s, t)
			}
		}
	}

	done := 0
	for _, t := range b.Tasks {
		if t.Status == "done" {
			done++
		}
	}
	fmt.Printf("\n%s%d tasks%s", colorBold, len(b.Tasks), colorReset)
	if done > 0 {
		fmt.Printf("  %s✓ %d done%s", colorGreen, done, colorReset)
	}
	fmt.Println()
	return nil
}

func printTaskLine(s *store.Store, t model.Task) {
	status := fmt.Sprintf("%s%-10s%s", ansiFromHex(s.StatusColor(t.Status)), t.Status, colorReset)
	due := ""
	if t.DueDate != "" {
		due = fmt.Sprintf("  %sdue %s%s", colorDim, t.DueDate, colorReset)
	}
	sub := ""
	if n := len(t.Subtasks); n > 0 {
		completed := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				completed++
			}
		}
		sub = fmt.Sprintf("  %s[%d/%d]%s", colorDim, completed, n, colorReset)
	}
	fmt.Printf("  %s %s %s%-6s%s %s%s%s\n",
		shortID(t.ID), status, priorityColor(t.Priority), t.Priority, colorReset, t.Title, due, sub)
}

func runBoardView(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveBoardID(s, args[0])
	if err != nil {
		return err
	}
	vt := model.ViewType(args[1])
	switch vt {
	case model.ViewList, model.ViewKanban, model.ViewCalendar:
	default:
		return fmt.Errorf("view type must be list, kanban or calendar, got %q", args[1])
	}
	s.SetBoardViewType(id, vt)
	fmt.Printf("Board %s view is now %s\n", shortID(id), vt)
	return nil
}

func runBoardDelete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveBoardID(s, args[0])
	if err != nil {
		return err
	}
	s.DeleteBoard(id)
	fmt.Printf("Deleted board %s\n", shortID(id))
	return nil
}

func priorityColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return colorRed + colorBold
	case model.PriorityMedium:
		return colorYellow
	case model.PriorityLow:
		return colorDim
	default:
		return ""
	}
}

// ansiFromHex converts a #RRGGBB status color into a truecolor escape.
// Unparseable colors render unstyled.
func ansiFromHex(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// sortColumns orders a board's columns for display.
func sortColumns(cols []model.Column) []model.Column {
	out := append([]model.Column(nil), cols...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
