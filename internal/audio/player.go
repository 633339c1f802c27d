package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/abelbrown/headstart/internal/logging"
)

// Output is an audio device that can start playing a buffer.
// Play returns once playback has started; it does not wait for the end.
type Output interface {
	Play(ctx context.Context, b *Buffer) error
}

// Player decodes speech payloads and plays them through a lazily created,
// process-lifetime Output. Concurrent Play calls overlap; nothing is queued.
type Player struct {
	newOutput func() (Output, error)

	once sync.Once
	out  Output
	err  error
}

// NewPlayer returns a Player that calls newOutput on first use only.
func NewPlayer(newOutput func() (Output, error)) *Player {
	return &Player{newOutput: newOutput}
}

func (p *Player) output() (Output, error) {
	p.once.Do(func() {
		if p.newOutput == nil {
			p.err = errors.New("audio: no output configured")
			return
		}
		p.out, p.err = p.newOutput()
	})
	return p.out, p.err
}

// PlayBase64 decodes a base64 PCM payload and starts playback.
func (p *Player) PlayBase64(ctx context.Context, payload string) error {
	buf, err := DecodeBase64(payload)
	if err != nil {
		return err
	}
	return p.Play(ctx, buf)
}

// Play starts playback of b.
func (p *Player) Play(ctx context.Context, b *Buffer) error {
	out, err := p.output()
	if err != nil {
		return err
	}
	logging.Debug("Audio playback starting", "samples", len(b.Samples), "duration", b.Duration())
	return out.Play(ctx, b)
}

// CommandOutput plays buffers by piping raw s16le PCM into an external
// player process. Arguments may reference {rate} and {channels}.
type CommandOutput struct {
	Name string
	Args []string
}

// DefaultPlayerCommands are tried in order by DetectCommandOutput.
var DefaultPlayerCommands = [][]string{
	{"aplay", "-q", "-t", "raw", "-f", "S16_LE", "-r", "{rate}", "-c", "{channels}", "-"},
	{"paplay", "--raw", "--format=s16le", "--rate={rate}", "--channels={channels}"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "-f", "s16le", "-ar", "{rate}", "-ac", "{channels}", "-"},
	{"play", "-q", "-t", "raw", "-e", "signed", "-b", "16", "-r", "{rate}", "-c", "{channels}", "-"},
}

// NewCommandOutput builds an output from a command line (name followed by args).
func NewCommandOutput(cmdline []string) (*CommandOutput, error) {
	if len(cmdline) == 0 || cmdline[0] == "" {
		return nil, errors.New("audio: empty player command")
	}
	if _, err := exec.LookPath(cmdline[0]); err != nil {
		return nil, fmt.Errorf("audio: player %q not found: %w", cmdline[0], err)
	}
	return &CommandOutput{Name: cmdline[0], Args: cmdline[1:]}, nil
}

// DetectCommandOutput returns the configured command if set, otherwise the
// first entry of DefaultPlayerCommands found on PATH.
func DetectCommandOutput(configured []string) (Output, error) {
	if len(configured) > 0 {
		return NewCommandOutput(configured)
	}
	for _, c := range DefaultPlayerCommands {
		if out, err := NewCommandOutput(c); err == nil {
			return out, nil
		}
	}
	return nil, errors.New("audio: no supported player found (tried aplay, paplay, ffplay, play)")
}

func (c *CommandOutput) args(b *Buffer) []string {
	r := strings.NewReplacer(
		"{rate}", strconv.Itoa(b.SampleRate),
		"{channels}", strconv.Itoa(b.Channels),
	)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		out[i] = r.Replace(a)
	}
	return out
}

// Play starts the player process and returns. The process is reaped in the
// background; playback is not tied to ctx so it outlives the caller.
func (c *CommandOutput) Play(ctx context.Context, b *Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := c.command(exec.Command, b)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("audio: start %s: %w", c.Name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Warn("Audio player exited with error", "player", c.Name, "error", err)
		}
	}()
	return nil
}

// Run plays b and waits for the player to exit. Cancelling ctx kills it.
func (c *CommandOutput) Run(ctx context.Context, b *Buffer) error {
	cmd := c.command(func(name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, name, args...)
	}, b)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio: run %s: %w", c.Name, err)
	}
	return nil
}

func (c *CommandOutput) command(newCmd func(string, ...string) *exec.Cmd, b *Buffer) *exec.Cmd {
	cmd := newCmd(c.Name, c.args(b)...)
	cmd.Stdin = bytes.NewReader(b.PCM16())
	return cmd
}
