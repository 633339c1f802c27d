package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/headstart/internal/catalog"
	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/render"
)

// maxConcurrentSummaries limits parallel summary requests for plan --summaries.
const maxConcurrentSummaries = 3

func interestsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "interests",
		Short: "List the interests a plan can be built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interests := catalog.Default().Interests
			w := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(w, interests)
			}
			for _, in := range interests {
				fmt.Fprintf(w, "%-14s %s %s\n", in.ID, in.Icon, in.Label)
			}
			return nil
		},
	}
}

// planResult is the --json shape of the plan command.
type planResult struct {
	Plan      content.GrowthPlan    `json:"plan"`
	Summaries []content.BookSummary `json:"summaries,omitempty"`
}

func planCmd(opts *options) *cobra.Command {
	var withSummaries bool

	cmd := &cobra.Command{
		Use:   "plan <interest-id>...",
		Short: "Generate a 15-minute daily growth plan",
		Long:  "Generate a daily growth plan for one or more interests. Run 'hs interests' for valid ids.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := validateInterests(catalog.Default(), args)
			if err != nil {
				return err
			}

			rt, err := opts.openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			plan, err := rt.Gateway.GrowthPlan(cmd.Context(), ids)
			if err != nil {
				return err
			}
			res := planResult{Plan: plan}

			if withSummaries && len(plan.SuggestedBooks) > 0 {
				res.Summaries = make([]content.BookSummary, len(plan.SuggestedBooks))
				g, gctx := errgroup.WithContext(cmd.Context())
				g.SetLimit(maxConcurrentSummaries)
				for i, title := range plan.SuggestedBooks {
					g.Go(func() error {
						s, err := rt.Gateway.BookSummary(gctx, title)
						if err != nil {
							return fmt.Errorf("summarize %q: %w", title, err)
						}
						res.Summaries[i] = s
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}
			}

			md := render.PlanMarkdown(plan, 0)
			for _, s := range res.Summaries {
				md += "\n\n---\n\n" + render.SummaryMarkdown(s)
			}
			return opts.emit(cmd.OutOrStdout(), rt.Config, res, md)
		},
	}

	cmd.Flags().BoolVar(&withSummaries, "summaries", false, "also summarize every suggested book")
	return cmd
}

// validateInterests checks ids against the catalog and drops duplicates.
func validateInterests(cat *catalog.Catalog, ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	var out []string
	var unknown []string
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := cat.Lookup(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		out = append(out, id)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown interest %s (see 'hs interests')", strings.Join(unknown, ", "))
	}
	return out, nil
}

func summaryCmd(opts *options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "summary <book title>",
		Short: "Summarize a book in key insights",
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
			if save {
				if _, err := addSaved(rt.Saved, s); err != nil {
					return err
				}
			}
			return opts.emit(cmd.OutOrStdout(), rt.Config, s, render.SummaryMarkdown(s))
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "add the summary to saved books")
	return cmd
}

func mentorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mentor [name]",
		Short: "Learn from a historical figure (no name lists suggestions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := joinArgs(args)
			if name == "" {
				mentors := catalog.Default().Mentors
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), mentors)
				}
				for _, m := range mentors {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s\n", m.Icon, m.Name, m.Theme)
				}
				return nil
			}

			rt, err := opts.openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			f, err := rt.Gateway.HistoricalFigure(cmd.Context(), name)
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), rt.Config, f, render.FigureMarkdown(f))
		},
	}
}

func courseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "course [topic]",
		Short: "Design an intensive micro-course (no topic lists suggestions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := joinArgs(args)
			if topic == "" {
				paths := catalog.Default().CoursePaths
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), paths)
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), p.Title)
				}
				return nil
			}

			rt, err := opts.openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			c, err := rt.Gateway.Course(cmd.Context(), topic)
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), rt.Config, c, render.CourseMarkdown(c))
		},
	}
}

func topicCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "topic [topic]",
		Short: "Recommend books on a topic (no topic lists suggestions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			topic := joinArgs(args)
			if topic == "" {
				topics := catalog.Default().ExploreTopics
				if opts.jsonOut {
					return writeJSON(w, topics)
				}
				for _, t := range topics {
					fmt.Fprintln(w, t)
				}
				return nil
			}

			rt, err := opts.openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			titles, err := rt.Gateway.BooksByTopic(cmd.Context(), topic)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(w, titles)
			}
			for i, title := range titles {
				fmt.Fprintf(w, "%d. %s\n", i+1, title)
			}
			return nil
		},
	}
}
