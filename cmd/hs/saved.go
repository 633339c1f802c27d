package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/render"
	"github.com/abelbrown/headstart/internal/store"
)

func savedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved book summaries",
	}
	cmd.AddCommand(savedListCmd(opts))
	cmd.AddCommand(savedShowCmd(opts))
	cmd.AddCommand(savedAddCmd(opts))
	cmd.AddCommand(savedRemoveCmd(opts))
	return cmd
}

func savedListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			books, err := rt.Saved.Load()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(w, books)
			}
			if len(books) == 0 {
				fmt.Fprintln(w, "No saved books yet. Use 'hs saved add <title>' to create one.")
				return nil
			}
			for _, b := range books {
				fmt.Fprintf(w, "%s  %s  (%s)\n", shortID(b.ID), b.Title, b.Author)
			}
			return nil
		},
	}
}

func savedShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved summary (id prefix accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			books, err := rt.Saved.Load()
			if err != nil {
				return err
			}
			b, err := findSaved(books, args[0])
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), rt.Config, b, render.SummaryMarkdown(b))
		},
	}
}

func savedAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <book title>",
		Short: "Summarize a book and save it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			s, err := rt.Gateway.BookSummary(cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			added, err := addSaved(rt.Saved, s)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "Already saved: %s\n", s.Title)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s  %s\n", shortID(s.ID), s.Title)
			return nil
		},
	}
}

func savedRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a saved book (id prefix accepted)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			books, err := rt.Saved.Load()
			if err != nil {
				return err
			}
			b, err := findSaved(books, args[0])
			if err != nil {
				return err
			}
			coll := content.NewSavedCollection(books)
			coll.Remove(b.ID)
			if err := rt.Saved.Save(coll.List()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", b.Title)
			return nil
		},
	}
}

// addSaved appends s unless a book with its id is already saved.
func addSaved(saved *store.SavedBooks, s content.BookSummary) (bool, error) {
	books, err := saved.Load()
	if err != nil {
		return false, err
	}
	coll := content.NewSavedCollection(books)
	if !coll.Add(s) {
		return false, nil
	}
	return true, saved.Save(coll.List())
}

// findSaved resolves an exact id or a unique id prefix.
func findSaved(books []content.BookSummary, id string) (content.BookSummary, error) {
	var matches []content.BookSummary
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
		if id != "" && strings.HasPrefix(b.ID, id) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return content.BookSummary{}, fmt.Errorf("no saved book with id %q", id)
	case 1:
		return matches[0], nil
	default:
		return content.BookSummary{}, fmt.Errorf("id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
