package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tjporte/internal/config"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check token, config and role table before serving",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	hasFailures := false
	for _, c := range doctorChecks(path) {
		mark := "\u2713" // ✓
		if !c.ok {
			mark = "\u2717" // ✗
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Println(line)
	}

	if hasFailures {
		fmt.Println()
		fmt.Println("Some checks failed. Run the suggested commands to fix.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}

func doctorChecks(path string) []checkResult {
	var checks []checkResult

	// 1. Binary location and version.
	execPath, _ := os.Executable()
	if execPath != "" {
		checks = append(checks, checkResult{
			label:  "tjporte binary",
			ok:     true,
			detail: fmt.Sprintf("%s (v%s)", execPath, version),
		})
	}

	// 2. Token.
	if _, err := config.Token(); errors.Is(err, config.ErrMissingToken) {
		checks = append(checks, checkResult{
			label:  "token",
			ok:     false,
			detail: "$" + config.TokenEnv + " not set",
			fix:    "export " + config.TokenEnv + "=<bot token>",
		})
	} else {
		checks = append(checks, checkResult{
			label:  "token",
			ok:     true,
			detail: "$" + config.TokenEnv + " set",
		})
	}

	// 3. Config file.
	if _, err := os.Stat(path); err != nil {
		checks = append(checks, checkResult{
			label:  "config file",
			ok:     false,
			detail: "missing, built-in defaults apply",
			fix:    "tjporte init",
		})
	} else {
		checks = append(checks, checkResult{
			label:  "config file",
			ok:     true,
			detail: path,
		})
	}

	// 4. Config parse and role table.
	cfg, err := config.Load(path)
	if err != nil {
		checks = append(checks, checkResult{
			label:  "config",
			ok:     false,
			detail: err.Error(),
			fix:    "edit " + path,
		})
		return checks
	}
	checks = append(checks, checkResult{
		label:  "roles",
		ok:     true,
		detail: strings.Join(cfg.Roles.Recognized(), ", "),
	})

	// 5. Command scope.
	scope := "global (may take up to an hour to appear)"
	if cfg.GuildID != "" {
		scope = "guild " + cfg.GuildID
	}
	checks = append(checks, checkResult{
		label:  "command scope",
		ok:     true,
		detail: scope,
	})

	return checks
}
