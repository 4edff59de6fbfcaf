package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tjporte/internal/config"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default tjporte configuration",
	Long: `Creates the config directory and a default config.yaml.

Edit the role names to match the server's roles, then run:
  export DISCORD_TOKEN=...
  tjporte serve`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	data, err := config.DefaultConfig().Marshal()
	if err != nil {
		return fmt.Errorf("render default config: %w", err)
	}

	wrote, err := writeIfMissing(path, configHeader+string(data))
	if err != nil {
		return err
	}

	fmt.Println("tjporte init complete.")
	fmt.Println()
	if wrote {
		fmt.Println("Created:")
		fmt.Printf("  %s\n", path)
	} else {
		fmt.Println("Config already exists (use --force to overwrite).")
	}
	fmt.Println()
	fmt.Println("Verify:")
	fmt.Println("  tjporte doctor")
	return nil
}

const configHeader = "# TJ-Porte bot configuration.\n" +
	"# roles: names of the server roles that grant each permission.\n" +
	"# guild_id: register commands on one server; empty registers them globally.\n" +
	"# The bot token is read from $" + config.TokenEnv + ", never from this file.\n\n"

// writeIfMissing writes content to path if it doesn't exist or --force is set.
// Returns true if the file was written.
func writeIfMissing(path, content string) (bool, error) {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
