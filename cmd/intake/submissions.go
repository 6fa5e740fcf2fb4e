package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/cli"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/query"
)

const unavailableCategory = "category unavailable"

func submissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"submission"},
		Short:   "Manage submission periods",
		Long:    `List, add, update, and delete the time-bounded intake periods filed under categories.`,
	}

	cmd.AddCommand(listSubmissionsCmd())
	cmd.AddCommand(addSubmissionCmd())
	cmd.AddCommand(updateSubmissionCmd())
	cmd.AddCommand(deleteSubmissionCmd())

	return cmd
}

func listSubmissionsCmd() *cobra.Command {
	var filter query.SubmissionFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions",
		Long:  `Display submissions with their category, most recently created first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(svc *admin.Service) error {
				submissions, err := svc.ListSubmissions(cmd.Context(), filter)
				if err != nil {
					return userError("list submissions", err)
				}

				out := cmd.OutOrStdout()
				if len(submissions) == 0 {
					fmt.Fprintln(out, cli.FormatInfo("No submissions found. Use 'intake submissions add' to create one."))
					return nil
				}

				w := newTable(out, "ID", "Name", "Category", "Status", "Year", "Quota", "Opens", "Closes")
				for _, sub := range submissions {
					category := sub.CategoryName("")
					if category == "" {
						category = cli.Placeholder(unavailableCategory)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
						sub.ID,
						sub.Name,
						category,
						cli.FormatStatus(sub.Status),
						sub.AcademicYear,
						sub.Quota,
						orDefault(sub.OpenDate, "-"),
						orDefault(sub.CloseDate, "-"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Only show submissions whose name or description contains this text")
	cmd.Flags().BoolVar(&filter.ActiveOnly, "active", false, "Only show open submissions")

	return cmd
}

var submissionFieldFlags = []string{
	"name", "category", "status", "quota", "academic-year", "open-date", "close-date", "description",
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

// submissionFlags are the editable fields shared by add and update.
type submissionFlags struct {
	category     string
	status       string
	academicYear string
	openDate     string
	closeDate    string
	description  string
	name         string
	quota        int
}

func (f *submissionFlags) register(flags *pflag.FlagSet, withName bool) {
	if withName {
		flags.StringVar(&f.name, "name", "", "New submission name")
	}
	flags.StringVar(&f.category, "category", "", "Category ID, slug, or name")
	flags.StringVar(&f.status, "status", string(model.StatusDraft), "Status (draft, open, closed)")
	flags.IntVar(&f.quota, "quota", 1, "Number of places offered")
	flags.StringVar(&f.academicYear, "academic-year", "", "Academic year (default: current year)")
	flags.StringVar(&f.openDate, "open-date", "", "Date the submission opens")
	flags.StringVar(&f.closeDate, "close-date", "", "Date the submission closes")
	flags.StringVar(&f.description, "description", "", "Submission description")
}

// apply copies every flag the user set onto input.
func (f *submissionFlags) apply(flags *pflag.FlagSet, input *model.SubmissionInput) {
	if flags.Changed("name") {
		input.Name = f.name
	}
	if flags.Changed("status") {
		input.Status = model.SubmissionStatus(f.status)
	}
	if flags.Changed("quota") {
		input.Quota = f.quota
	}
	if flags.Changed("academic-year") {
		input.AcademicYear = f.academicYear
	}
	if flags.Changed("open-date") {
		input.OpenDate = f.openDate
	}
	if flags.Changed("close-date") {
		input.CloseDate = f.closeDate
	}
	if flags.Changed("description") {
		input.Description = f.description
	}
}

func addSubmissionCmd() *cobra.Command {
	var values submissionFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new submission",
		Long: `Create a submission under a category. Unset fields take the form
defaults: status draft, quota 1, and the current academic year.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withService(ctx, func(svc *admin.Service) error {
				cat, err := svc.ResolveCategory(ctx, values.category)
				if err != nil {
					return userError("find category", err)
				}

				input := svc.NewSubmissionInput()
				input.Name = args[0]
				input.CategoryID = cat.ID
				values.apply(cmd.Flags(), &input)

				sub, err := svc.CreateSubmission(ctx, input)
				if err != nil {
					return userError("create submission", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created submission %q in %q (slug: %s, ID: %s)", sub.Name, cat.Name, sub.Slug, sub.ID)))
				return nil
			})
		},
	}

	values.register(cmd.Flags(), false)
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func updateSubmissionCmd() *cobra.Command {
	var values submissionFlags

	cmd := &cobra.Command{
		Use:   "update <id|slug>",
		Short: "Update a submission",
		Long:  `Change fields of an existing submission. Fields without a flag keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !anyChanged(flags, submissionFieldFlags...) {
				return fmt.Errorf("must specify at least one field to update")
			}

			ctx := cmd.Context()
			return withService(ctx, func(svc *admin.Service) error {
				current, err := svc.ResolveSubmission(ctx, args[0])
				if err != nil {
					return userError("find submission", err)
				}

				input := admin.ToInput(*current)
				if flags.Changed("category") {
					cat, err := svc.ResolveCategory(ctx, values.category)
					if err != nil {
						return userError("find category", err)
					}
					input.CategoryID = cat.ID
				}
				values.apply(flags, &input)

				if err := svc.UpdateSubmission(ctx, current.ID, input); err != nil {
					return userError("update submission", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated submission %q", input.Name)))
				return nil
			})
		},
	}

	values.register(cmd.Flags(), true)

	return cmd
}

func deleteSubmissionCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id|slug>",
		Short: "Delete a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withService(ctx, func(svc *admin.Service) error {
				sub, err := svc.ResolveSubmission(ctx, args[0])
				if err != nil {
					return userError("find submission", err)
				}

				out := cmd.OutOrStdout()
				ok, err := confirm(cmd, force, fmt.Sprintf("Delete submission %q?", sub.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Deletion canceled"))
					return nil
				}

				if err := svc.DeleteSubmission(ctx, sub.ID); err != nil {
					return userError("delete submission", err)
				}

				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted submission %q", sub.Name)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking for confirmation")

	return cmd
}
