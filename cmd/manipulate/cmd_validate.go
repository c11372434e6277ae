package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gookit/gcli/v2"

	"github.com/karabiner-go/manipulator/internal/app"
	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/config"
	"github.com/karabiner-go/manipulator/internal/event"
)

var validateOpts struct {
	configPath string
}

func newValidateCommand() *gcli.Command {
	return &gcli.Command{
		Name:   "validate",
		UseFor: "Load the configuration and build the selected profile's manager, reporting skipped rules",
		Config: func(c *gcli.Command) {
			c.Flags.StrOpt(&validateOpts.configPath, "config", "c", app.ConfigFilePath(), "path to the configuration file")
		},
		Func: runValidate,
	}
}

func runValidate(_ *gcli.Command, _ []string) error {
	root, err := config.Load(validateOpts.configPath, slog.Default())
	if err != nil {
		return fmt.Errorf("manipulate validate: loading config: %w", err)
	}
	profile, ok := root.SelectedProfile()
	if !ok {
		return fmt.Errorf("manipulate validate: configuration has no profiles")
	}

	counter := &skipCounter{}
	log := slog.New(counter)

	manager := app.BuildManager(profile, clockx.System{}, func(event.Event) {}, log)

	fmt.Printf("Profile %q: %d manipulators built, %d rule(s)/pair(s) skipped\n",
		profile.Name, manager.Len(), counter.skipped)
	for _, msg := range counter.messages {
		fmt.Printf("  skipped: %s\n", msg)
	}
	return nil
}

// skipCounter is a minimal slog.Handler that counts and retains the
// message text of every Error-level record BuildManager logs (one per
// skipped pair or rule) without writing anything to a stream.
type skipCounter struct {
	skipped  int
	messages []string
}

func (c *skipCounter) Enabled(context.Context, slog.Level) bool { return true }

func (c *skipCounter) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		c.skipped++
		c.messages = append(c.messages, r.Message)
	}
	return nil
}

func (c *skipCounter) WithAttrs(attrs []slog.Attr) slog.Handler { return c }
func (c *skipCounter) WithGroup(name string) slog.Handler       { return c }
