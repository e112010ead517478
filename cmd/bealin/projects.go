package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arttttt/Bealin/internal/client"
)

func newProjectsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "List, add, remove and activate projects",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List projects, marking the active one with *",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				projects, err := opts.repository().GetProjects(cmd.Context())
				if err != nil {
					return err
				}
				return printProjects(cmd.OutOrStdout(), projects)
			},
		},
		&cobra.Command{
			Use:   "active",
			Short: "Show the active project",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := opts.repository().GetActiveProject(cmd.Context())
				if err != nil {
					return err
				}
				if p == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "no active project")
					return nil
				}
				return printProjects(cmd.OutOrStdout(), []client.Project{*p})
			},
		},
		newAddCmd(opts),
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a project from the list. Files are left untouched",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := opts.repository().RemoveProject(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "activate <id>",
			Short: "Make a project active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := opts.repository().SetActiveProject(cmd.Context(), args[0])
				if client.IsCode(err, client.CodeNotFound) {
					return fmt.Errorf("no project with id %q", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "activated %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate <path>",
			Short: "Check whether a path holds a beads project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := opts.repository().ValidatePath(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !v.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s has no .beads folder\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "valid (suggested name: %s)\n", v.SuggestedName)
				return nil
			},
		},
	)
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a project by its root or .beads path and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.repository().AddProject(cmd.Context(), args[0], name)
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				return errors.New(apiErr.Message)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the folder name)")
	return cmd
}

func printProjects(out io.Writer, projects []client.Project) error {
	if len(projects) == 0 {
		fmt.Fprintln(out, "no projects")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tPATH\tADDED")
	for _, p := range projects {
		mark := ""
		if p.IsActive {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, p.ID, p.Name, p.Path, p.AddedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
