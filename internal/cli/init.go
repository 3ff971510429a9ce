package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskhub/taskhub/internal/config"
	"github.com/taskhub/taskhub/internal/logger"
	"github.com/taskhub/taskhub/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize taskhub in the current directory",
	Long:  "Creates a .taskhub/ directory with default config and a seeded document store.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if already initialized.
	if _, err := os.Stat(taskhubDirName); err == nil {
		return fmt.Errorf("taskhub already initialized in this directory (.taskhub/ exists)")
	}

	if err := os.MkdirAll(taskhubDirName, 0755); err != nil {
		return fmt.Errorf("create .taskhub: %w", err)
	}

	// Write default config.
	cfgPath := filepath.Join(taskhubDirName, "config.yaml")
	cfg := config.DefaultConfig()
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Open the store once so the seed document is created and persisted.
	adapter, err := openAdapter(cfg)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	s := store.New(adapter, logger.New(cfg.Log.Level, cfg.Log.Encoding))
	ws := s.CurrentWorkspace()
	s.Close()

	fmt.Println("Initialized taskhub in .taskhub/")
	if ws != nil {
		fmt.Printf("Seeded workspace %q with a starter board.\n", ws.Name)
	}
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Run: taskhub board show")
	fmt.Println("  2. Run: taskhub task create \"your first task\"")
	fmt.Println("  3. Run: taskhub ui")

	return nil
}
