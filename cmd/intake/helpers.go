package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/cli"
	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/config"
	"github.com/Veraticus/intake/internal/service"
	"github.com/Veraticus/intake/internal/storage"
)

// initStorage opens the configured store and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("%w: configuration not loaded", common.ErrMissingConfig)
	}

	var store service.Storage
	switch appConfig.Database.Driver {
	case config.DriverMemory:
		store = storage.NewMemoryStorage()
	default:
		sqlite, err := storage.NewSQLiteStorage(appConfig.Database.Path)
		if err != nil {
			return nil, err
		}
		store = sqlite
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// withService runs fn against a freshly opened store and closes it afterwards.
func withService(ctx context.Context, fn func(*admin.Service) error) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return fn(admin.New(store))
}

// newTable returns a tabwriter with a styled header row and rule.
func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = cli.HeaderStyle.Render(h)
		rules[i] = strings.Repeat("-", max(len(h), 4))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	return tw
}

// confirm asks question on the command's streams unless force is set.
func confirm(cmd *cobra.Command, force bool, question string) (bool, error) {
	if force {
		return true, nil
	}
	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	ok, err := reader.Confirm(cmd.Context(), cmd.OutOrStdout(), question)
	if errors.Is(err, cli.ErrInputCancelled) {
		return false, nil
	}
	return ok, err
}

// userError attaches the operator-facing message to a store failure while
// keeping the cause inspectable with errors.Is.
func userError(action string, err error) error {
	if err == nil {
		return nil
	}
	return common.NewUserError(fmt.Sprintf("failed to %s: %s", action, common.UserMessage(err)), err)
}

// errorText is what main prints for a failed command.
func errorText(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return cli.Placeholder(fallback)
	}
	return s
}
