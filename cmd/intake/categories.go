package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/cli"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/query"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage admission categories",
		Long:    `List, add, update, and delete the categories submissions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  `Display categories, most recently created first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(svc *admin.Service) error {
				categories, err := svc.ListCategories(cmd.Context(), search)
				if err != nil {
					return userError("list categories", err)
				}

				out := cmd.OutOrStdout()
				if len(categories) == 0 {
					fmt.Fprintln(out, cli.FormatInfo("No categories found. Use 'intake categories add' to create one."))
					return nil
				}

				w := newTable(out, "ID", "Name", "Slug", "Description")
				for _, cat := range categories {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Slug, orDefault(cat.Description, "(no description)"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only show categories whose name or description contains this text")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a category. Its slug is derived from the name and must be unused.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(svc *admin.Service) error {
				cat, err := svc.CreateCategory(cmd.Context(), model.CategoryInput{
					Name:        args[0],
					Description: description,
				})
				if err != nil {
					return userError("create category", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %q (slug: %s, ID: %s)", cat.Name, cat.Slug, cat.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Category description")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id|slug>",
		Short: "Update a category",
		Long:  `Update the name or description of an existing category. Renaming recomputes the slug.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("description") {
				return fmt.Errorf("must specify --name or --description to update")
			}

			ctx := cmd.Context()
			return withService(ctx, func(svc *admin.Service) error {
				current, err := svc.ResolveCategory(ctx, args[0])
				if err != nil {
					return userError("find category", err)
				}

				input := model.CategoryInput{Name: current.Name, Description: current.Description}
				if flags.Changed("name") {
					input.Name = name
				}
				if flags.Changed("description") {
					input.Description = description
				}

				if err := svc.UpdateCategory(ctx, current.ID, input); err != nil {
					return userError("update category", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %q", input.Name)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New category name")
	cmd.Flags().StringVar(&description, "description", "", "New category description (empty clears it)")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id|slug>",
		Short: "Delete a category",
		Long: `Delete a category. Submissions filed under it are kept and listed
as "category unavailable" until they are moved to another category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withService(ctx, func(svc *admin.Service) error {
				cat, err := svc.ResolveCategory(ctx, args[0])
				if err != nil {
					return userError("find category", err)
				}

				submissions, err := svc.ListSubmissions(ctx, query.SubmissionFilter{})
				if err != nil {
					return userError("list submissions", err)
				}
				referencing := 0
				for _, sub := range submissions {
					if sub.CategoryID == cat.ID {
						referencing++
					}
				}

				out := cmd.OutOrStdout()
				if referencing > 0 {
					fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d submission(s) reference %q and will show as %q.", referencing, cat.Name, unavailableCategory)))
				}

				ok, err := confirm(cmd, force, fmt.Sprintf("Delete category %q?", cat.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Deletion canceled"))
					return nil
				}

				if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
					return userError("delete category", err)
				}

				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted category %q", cat.Name)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking for confirmation")

	return cmd
}
