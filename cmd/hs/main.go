// Command hs is a scripting CLI over the HeadStart gateway and saved books.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abelbrown/headstart/internal/app"
	"github.com/abelbrown/headstart/internal/config"
	"github.com/abelbrown/headstart/internal/logging"
	"github.com/abelbrown/headstart/internal/render"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	jsonOut  bool
	language string
	style    string
	width    int
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "hs",
		Short:        "HeadStart: 15 minutes a day of growth content",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.WarnLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logging.InitWriter(cmd.ErrOrStderr(), level)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.language, "lang", "", "language for generated content (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.style, "style", "", "markdown style: dark, light, notty (default from config)")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 80, "wrap width for rendered output")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(interestsCmd(opts))
	rootCmd.AddCommand(planCmd(opts))
	rootCmd.AddCommand(summaryCmd(opts))
	rootCmd.AddCommand(mentorCmd(opts))
	rootCmd.AddCommand(courseCmd(opts))
	rootCmd.AddCommand(topicCmd(opts))
	rootCmd.AddCommand(speakCmd(opts))
	rootCmd.AddCommand(savedCmd(opts))
	rootCmd.AddCommand(eventsCmd(opts))

	return rootCmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.language != "" {
		cfg.Language = o.language
	}
	if o.style != "" {
		cfg.UI.Theme = o.style
	}
	return cfg, nil
}

// openRuntime loads config and opens the shared runtime.
func (o *options) openRuntime(ctx context.Context) (*app.Runtime, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg)
}

// openGateway is openRuntime for commands that need generation.
func (o *options) openGateway(ctx context.Context) (*app.Runtime, error) {
	rt, err := o.openRuntime(ctx)
	if err != nil {
		return nil, err
	}
	if !rt.Gateway.Available() {
		rt.Close()
		return nil, fmt.Errorf("no Gemini API key: set GEMINI_API_KEY or add gemini.api_key to %s", config.ConfigPath())
	}
	return rt, nil
}

// emit prints v as JSON with --json, and the rendered markdown otherwise.
func (o *options) emit(w io.Writer, cfg *config.Config, v any, md string) error {
	if o.jsonOut {
		return writeJSON(w, v)
	}
	r := render.NewRenderer(cfg.UI.Theme, o.width)
	_, err := fmt.Fprintln(w, r.Render(md))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// joinArgs treats all positional args as one phrase.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
