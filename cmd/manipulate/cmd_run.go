package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gookit/gcli/v2"

	"github.com/karabiner-go/manipulator/internal/app"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/config"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/manipulate"
	"github.com/karabiner-go/manipulator/internal/sink"
)

var runOpts struct {
	configPath string
}

func newRunCommand() *gcli.Command {
	return &gcli.Command{
		Name:   "run",
		UseFor: "Replay newline-delimited JSON events from stdin through the selected profile",
		Config: func(c *gcli.Command) {
			c.Flags.StrOpt(&runOpts.configPath, "config", "c", app.ConfigFilePath(), "path to the configuration file")
		},
		Func: runRun,
	}
}

func runRun(_ *gcli.Command, _ []string) error {
	root, err := config.Load(runOpts.configPath, slog.Default())
	if err != nil {
		return fmt.Errorf("manipulate run: loading config: %w", err)
	}
	profile, ok := root.SelectedProfile()
	if !ok {
		return fmt.Errorf("manipulate run: configuration has no profiles")
	}

	input := sink.NewChannel(64)
	output := &lineWriter{w: os.Stdout}
	env := &condition.Environment{}

	dispatcher := manipulate.NewDispatcher(nil, input, output, env, slog.Default())
	clock := manipulate.NewDispatcherClock(dispatcher)
	manager := app.BuildManager(profile, clock, dispatcher.Emit, slog.Default())
	dispatcher.SetManager(manager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go feedStdin(ctx, input)

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, sink.ErrClosed) {
		return fmt.Errorf("manipulate run: %w", err)
	}
	return nil
}

func feedStdin(ctx context.Context, input *sink.Channel) {
	defer input.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		ev, err := event.FromJSON(line)
		if err != nil {
			slog.Error("skipping malformed input line", "error", err, "line", string(line))
			continue
		}
		if err := input.Push(ev); err != nil {
			return
		}
	}
}

// lineWriter implements sink.Output by writing each event as one
// NDJSON line.
type lineWriter struct {
	w interface {
		Write([]byte) (int, error)
	}
}

func (l *lineWriter) Send(ev event.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.w.Write(data)
	return err
}
