package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newBoardsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your boards",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := a.newClient(true)
				if err != nil {
					return err
				}
				ctx, cancel := a.callContext(cmd)
				defer cancel()

				boards, err := c.ListBoards(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(boards) == 0 {
					fmt.Fprintln(out, "No boards.")
					return nil
				}
				for _, b := range boards {
					fmt.Fprintf(out, "%s  %s\n", shortID(b.ID), b.Title)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "create <title...>",
			Short: "Create a board",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.newClient(true)
				if err != nil {
					return err
				}
				ctx, cancel := a.callContext(cmd)
				defer cancel()

				b, err := c.CreateBoard(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created board %s (%s).\n", b.Title, shortID(b.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <board>",
			Short: "Delete a board and all of its tasks",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.newClient(true)
				if err != nil {
					return err
				}
				ctx, cancel := a.callContext(cmd)
				defer cancel()

				id, err := resolveBoard(ctx, c, args[0])
				if err != nil {
					return err
				}
				if err := c.DeleteBoard(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted board %s.\n", shortID(id))
				return nil
			},
		},
	)
	return cmd
}
