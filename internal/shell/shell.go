// Package shell runs the interactive numbered-menu command loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yourorg/photoapp/internal/catalog"
	"github.com/yourorg/photoapp/internal/metrics"
)

// Handlers is the set of commands reachable from the menu.
type Handlers interface {
	Stats(ctx context.Context) error
	ListUsers(ctx context.Context) error
	ListAssets(ctx context.Context) error
	Download(ctx context.Context, display bool) error
	Upload(ctx context.Context) error
	AddUser(ctx context.Context) error
}

type command struct {
	name string
	run  func(context.Context, Handlers) error
}

var commands = map[int]command{
	1: {"stats", func(ctx context.Context, h Handlers) error { return h.Stats(ctx) }},
	2: {"users", func(ctx context.Context, h Handlers) error { return h.ListUsers(ctx) }},
	3: {"assets", func(ctx context.Context, h Handlers) error { return h.ListAssets(ctx) }},
	4: {"download", func(ctx context.Context, h Handlers) error { return h.Download(ctx, false) }},
	5: {"download and display", func(ctx context.Context, h Handlers) error { return h.Download(ctx, true) }},
	6: {"upload", func(ctx context.Context, h Handlers) error { return h.Upload(ctx) }},
	7: {"add user", func(ctx context.Context, h Handlers) error { return h.AddUser(ctx) }},
}

// Shell reads operator input line by line and writes all user-facing output.
type Shell struct {
	lines <-chan line
	out   io.Writer
	log   *zap.Logger
	// ctx interrupts a pending Prompt; Run replaces it for the length of the loop.
	ctx context.Context
}

type line struct {
	text string
	err  error
}

func New(in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	lines := make(chan line)
	go readLines(bufio.NewReader(in), lines)
	return &Shell{lines: lines, out: out, log: log, ctx: context.Background()}
}

// readLines feeds whole lines of any length to the prompt, then closes lines at end of input.
func readLines(r *bufio.Reader, lines chan<- line) {
	defer close(lines)
	for {
		s, err := r.ReadString('\n')
		if s != "" {
			lines <- line{text: s}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			lines <- line{err: err}
			return
		}
	}
}

// Prompt prints label and returns the next input line without its line ending.
// It returns io.EOF at end of input and the context error once the loop is interrupted.
func (s *Shell) Prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	select {
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimRight(l.text, "\r\n"), nil
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	}
}

// Run loops until command 0, end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context, h Handlers) error {
	prev := s.ctx
	s.ctx = ctx
	defer func() { s.ctx = prev }()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu()
		input, err := s.Prompt("")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		code, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			s.banner("invalid input")
			continue
		}
		if code == 0 {
			return nil
		}
		cmd, ok := commands[code]
		if !ok {
			fmt.Fprintln(s.out, "** Unknown command, try again...")
			continue
		}
		metrics.Commands.WithLabelValues(cmd.name).Inc()
		err = cmd.run(ctx, h)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.render(cmd.name, err)
		}
	}
}

func (s *Shell) menu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ">> Enter a command:")
	fmt.Fprintln(s.out, "   0 => end")
	for code := 1; code <= len(commands); code++ {
		fmt.Fprintf(s.out, "   %d => %s\n", code, commands[code].name)
	}
}

func (s *Shell) banner(msg string) {
	fmt.Fprintln(s.out, "ERROR")
	fmt.Fprintln(s.out, "ERROR: "+msg)
	fmt.Fprintln(s.out, "ERROR")
}

// render prints a failed command's result. Precondition and data failures
// are plain messages; everything else gets the ERROR banner.
func (s *Shell) render(name string, err error) {
	kind := catalog.KindOf(err)
	metrics.CommandFailures.WithLabelValues(name, kind.String()).Inc()

	var ce *catalog.Error
	hasErr := errors.As(err, &ce)
	switch {
	case hasErr && (kind == catalog.KindPrecondition || kind == catalog.KindData):
		fmt.Fprintln(s.out, ce.Msg)
		s.log.Info("command rejected", zap.String("command", name), zap.Stringer("kind", kind), zap.Error(err))
		return
	case hasErr && kind == catalog.KindInput:
		s.banner(ce.Msg)
	default:
		s.banner("an exception was raised and caught")
		fmt.Fprintln(s.out, "MESSAGE:", err)
	}
	s.log.Warn("command failed", zap.String("command", name), zap.Stringer("kind", kind), zap.Error(err))
}
