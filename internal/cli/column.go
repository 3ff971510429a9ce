package cli

import (
	"fmt"
	"strings"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/spf13/cobra"
)

var (
	columnBoardFlag string
	columnTypeFlag  string
	columnTitleFlag string
	columnOrderFlag int
)

var columnCmd = &cobra.Command{
	Use:     "column",
	Aliases: []string{"col"},
	Short:   "Manage board columns",
}

var columnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List columns on the current board",
	RunE:  runColumnList,
}

var columnAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a column to the current board",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runColumnAdd,
}

var columnUpdateCmd = &cobra.Command{
	Use:   "update [column]",
	Short: "Update a column",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumnUpdate,
}

var columnDeleteCmd = &cobra.Command{
	Use:   "delete [column]",
	Short: "Delete a column and every task in it",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumnDelete,
}

func init() {
	columnCmd.PersistentFlags().StringVarP(&columnBoardFlag, "board", "b", "", "Board (defaults to current)")
	columnAddCmd.Flags().StringVarP(&columnTypeFlag, "type", "t", "text", "Column type: text, status, priority, person or date")
	columnUpdateCmd.Flags().StringVar(&columnTitleFlag, "title", "", "New title")
	columnUpdateCmd.Flags().StringVarP(&columnTypeFlag, "type", "t", "", "New type")
	columnUpdateCmd.Flags().IntVarP(&columnOrderFlag, "order", "o", 0, "New order")

	columnCmd.AddCommand(columnListCmd)
	columnCmd.AddCommand(columnAddCmd)
	columnCmd.AddCommand(columnUpdateCmd)
	columnCmd.AddCommand(columnDeleteCmd)
}

func parseColumnType(arg string) (model.ColumnType, error) {
	t := model.ColumnType(arg)
	switch t {
	case model.ColumnText, model.ColumnStatus, model.ColumnPriority, model.ColumnPerson, model.ColumnDate:
		return t, nil
	default:
		return "", fmt.Errorf("column type must be text, status, priority, person or date, got %q", arg)
	}
}

func runColumnList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, columnBoardFlag)
	if err != nil {
		return err
	}
	for _, c := range sortColumns(b.Columns) {
		fmt.Printf("%-12s %2d  %-16s %s\n", shortID(c.ID), c.Order, c.Title, c.Type)
	}
	return nil
}

func runColumnAdd(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, columnBoardFlag)
	if err != nil {
		return err
	}
	colType, err := parseColumnType(columnTypeFlag)
	if err != nil {
		return err
	}
	c, ok := s.AddColumn(b.ID, strings.Join(args, " "), colType)
	if !ok {
		return fmt.Errorf("board vanished while adding column")
	}
	fmt.Printf("Added column %s (%s) at position %d\n", c.Title, shortID(c.ID), c.Order)
	return nil
}

func runColumnUpdate(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, columnBoardFlag)
	if err != nil {
		return err
	}
	id, err := resolveColumnID(b, args[0])
	if err != nil {
		return err
	}

	var patch model.ColumnPatch
	changed := false
	if cmd.Flags().Changed("title") {
		patch.Title = model.Ptr(columnTitleFlag)
		changed = true
	}
	if cmd.Flags().Changed("type") {
		t, err := parseColumnType(columnTypeFlag)
		if err != nil {
			return err
		}
		patch.Type = model.Ptr(t)
		changed = true
	}
	if cmd.Flags().Changed("order") {
		patch.Order = model.Ptr(columnOrderFlag)
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to update: pass at least one flag")
	}

	s.UpdateColumn(id, patch)
	fmt.Printf("Updated column %s\n", shortID(id))
	return nil
}

func runColumnDelete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := boardArg(s, columnBoardFlag)
	if err != nil {
		return err
	}
	id, err := resolveColumnID(b, args[0])
	if err != nil {
		return err
	}

	inColumn := 0
	for _, t := range b.Tasks {
		if t.ColumnID == id {
			inColumn++
		}
	}
	s.DeleteColumn(id)
	fmt.Printf("Deleted column %s and %d task(s)\n", shortID(id), inColumn)
	return nil
}
