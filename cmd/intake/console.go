package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/config"
	"github.com/Veraticus/intake/internal/tui"
	"github.com/Veraticus/intake/internal/tui/themes"
)

func consoleCmd() *cobra.Command {
	var (
		theme   string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive management console",
		Long: `Browse, search, create, edit, and delete categories and submissions
in a full-screen terminal interface. Press ? inside the console for keys.

Logs are discarded while the console is open unless --log-file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("theme") {
				theme = appConfig.UI.Theme
			}

			opts := []tui.Option{tui.WithTheme(themes.GetTheme(theme))}
			if logFile != "" {
				level, err := common.ParseLevel(appConfig.Logging.Level)
				if err != nil {
					return err
				}
				f, err := os.OpenFile(config.ExpandPath(logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path is provided by the operator
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer func() { _ = f.Close() }()
				opts = append(opts, tui.WithLogOutput(f, level))
			}

			ctx := cmd.Context()
			return withService(ctx, func(svc *admin.Service) error {
				return tui.Run(ctx, append(opts, tui.WithService(svc))...)
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file while the console is open")

	return cmd
}
