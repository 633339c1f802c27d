package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abelbrown/headstart/internal/app"
	"github.com/abelbrown/headstart/internal/audio"
)

func speakCmd(opts *options) *cobra.Command {
	var (
		book    string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Narrate text, or a book's key idea with --book",
		Long: "Synthesize speech and play it through the configured player, " +
			"or write a WAV file with --out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := joinArgs(args)
			if text == "" && book == "" {
				return fmt.Errorf("nothing to say: pass text or --book")
			}

			rt, err := opts.openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if book != "" {
				s, err := rt.Gateway.BookSummary(cmd.Context(), book)
				if err != nil {
					return err
				}
				text = s.SpeechText()
			}

			payload, err := rt.Gateway.Speak(cmd.Context(), text)
			if err != nil {
				return err
			}
			buf, err := audio.DecodeBase64(payload)
			if err != nil {
				return err
			}

			if outPath != "" {
				return writeWAV(outPath, buf)
			}

			out, err := audio.DetectCommandOutput(app.PlayerCommand(rt.Config))
			if err != nil {
				return err
			}
			// Wait for the player; the process would be cut off on exit
			if runner, ok := out.(interface {
				Run(ctx context.Context, b *audio.Buffer) error
			}); ok {
				return runner.Run(cmd.Context(), buf)
			}
			return out.Play(cmd.Context(), buf)
		},
	}

	cmd.Flags().StringVar(&book, "book", "", "summarize this book and narrate its main idea")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write a WAV file instead of playing")
	return cmd
}

func writeWAV(path string, buf *audio.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := audio.EncodeWAV(f, buf); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
