package cli

import (
	"fmt"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/spf13/cobra"
)

var statusColorFlag string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Manage the status palette",
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured statuses",
	RunE:  runStatusList,
}

var statusAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatusAdd,
}

var statusRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a status everywhere it is used",
	Args:  cobra.ExactArgs(2),
	RunE:  runStatusRename,
}

var statusDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Remove a status from the palette",
	RunE:  runStatusDelete,
	Args:  cobra.ExactArgs(1),
}

var statusReorderCmd = &cobra.Command{
	Use:   "reorder [name...]",
	Short: "Reorder the palette (list every status in the new order)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStatusReorder,
}

func init() {
	statusAddCmd.Flags().StringVarP(&statusColorFlag, "color", "c", model.DefaultGray, "Hex color, e.g. #10B981")
	statusRenameCmd.Flags().StringVarP(&statusColorFlag, "color", "c", "", "New hex color (defaults to the old one)")

	statusCmd.AddCommand(statusListCmd)
	statusCmd.AddCommand(statusAddCmd)
	statusCmd.AddCommand(statusRenameCmd)
	statusCmd.AddCommand(statusDeleteCmd)
	statusCmd.AddCommand(statusReorderCmd)
}

func runStatusList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, c := range s.StatusConfigs() {
		fmt.Printf("%s●%s %-12s %s\n", ansiFromHex(c.Color), colorReset, c.Name, c.Color)
	}
	return nil
}

func runStatusAdd(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.AddStatus(args[0], statusColorFlag) {
		return fmt.Errorf("status %q already exists or is empty", args[0])
	}
	fmt.Printf("Added status %s\n", args[0])
	return nil
}

func runStatusRename(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	oldName, newName := args[0], args[1]
	color := statusColorFlag
	if color == "" {
		color = s.StatusColor(oldName)
	}
	if !s.RenameStatus(oldName, newName, color) {
		return fmt.Errorf("cannot rename %q to %q: missing old name or name collision", oldName, newName)
	}
	fmt.Printf("Renamed status %s to %s across all boards\n", oldName, newName)
	return nil
}

func runStatusDelete(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	s.DeleteStatus(args[0])
	fmt.Printf("Removed status %s from the palette (tasks keep their value)\n", args[0])
	return nil
}

func runStatusReorder(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	existing := s.StatusConfigs()
	byName := make(map[string]model.StatusConfig, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}
	if len(args) != len(existing) {
		return fmt.Errorf("reorder needs all %d statuses, got %d", len(existing), len(args))
	}
	ordered := make([]model.StatusConfig, 0, len(args))
	for _, name := range args {
		c, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown status %q", name)
		}
		ordered = append(ordered, c)
		delete(byName, name)
	}

	s.ReorderStatuses(ordered)
	fmt.Println("Reordered statuses")
	return nil
}
