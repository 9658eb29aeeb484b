package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/project"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create an arspace.yaml in the current directory",
	Long:  `Writes a default arspace.yaml and creates the plans directory. The project name defaults to the directory name.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		configPath := filepath.Join(cwd, project.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists", configPath)
		}

		name := filepath.Base(cwd)
		if len(args) == 1 {
			name = args[0]
		}

		config := project.Default(name)
		if err := config.Save(cwd); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(cwd, config.PlansDir), 0755); err != nil {
			return fmt.Errorf("creating plans directory: %w", err)
		}

		log.Printf("initialized project %s in %s", name, cwd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
