package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/cli"
	"github.com/Veraticus/intake/internal/seed"
)

func seedCmd() *cobra.Command {
	var (
		strict     bool
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "seed <file.toml>",
		Short: "Import categories and submissions from a TOML file",
		Long: `Create every category and submission listed in a seed file.

Submissions name their category by slug or name. Records whose slug already
exists are skipped, so a seed file can be re-applied safely; pass --strict
to fail on them instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			handler := cli.NewInterruptHandler(errOut, "Seed import",
				"Records created so far were kept. Run the seed again to import the rest; existing records are skipped.")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			return withService(ctx, func(svc *admin.Service) error {
				opts := seed.Options{Strict: strict}
				if !noProgress && file.Len() > 0 {
					bar := cli.NewProgressBar(errOut, file.Len(), "Importing records...")
					opts.Progress = func(_, _ int, _ string) {
						if err := bar.Add(1); err != nil {
							slog.Warn("Failed to update progress bar", "error", err)
						}
					}
				}

				result, err := seed.Apply(ctx, svc, file, opts)
				if err != nil {
					if handler.WasInterrupted() && errors.Is(err, ctx.Err()) {
						return fmt.Errorf("seed import interrupted after %d record(s)", result.Created)
					}
					return userError("apply seed", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d record(s), skipped %d existing", result.Created, result.Skipped)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a record's slug already exists")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not draw a progress bar")

	return cmd
}
