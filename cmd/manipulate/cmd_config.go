package main

import (
	"fmt"

	"github.com/gookit/gcli/v2"
	"github.com/muesli/termenv"

	"github.com/karabiner-go/manipulator/internal/app"
	"github.com/karabiner-go/manipulator/internal/config"
)

func newConfigCommand() *gcli.Command {
	return &gcli.Command{
		Name:   "config",
		UseFor: "Print the configuration file path that would be loaded",
		Func: func(_ *gcli.Command, _ []string) error {
			path := termenv.Style{}.Foreground(termenv.ANSICyan).Styled(app.ConfigFilePath())
			fmt.Printf("Configuration file:\n\t%s\n", path)
			return nil
		},
	}
}

var configSelectOpts struct {
	configPath string
}

func newConfigSelectCommand() *gcli.Command {
	return &gcli.Command{
		Name:   "config-select",
		UseFor: "Mark the named profile selected, leaving the rest of the file untouched",
		Config: func(c *gcli.Command) {
			c.Flags.StrOpt(&configSelectOpts.configPath, "config", "c", app.ConfigFilePath(), "path to the configuration file")
		},
		Func: func(_ *gcli.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("manipulate config select: expected exactly one profile name argument")
			}
			if err := config.SelectProfile(configSelectOpts.configPath, args[0]); err != nil {
				return fmt.Errorf("manipulate config select: %w", err)
			}
			fmt.Printf("Selected profile %q\n", args[0])
			return nil
		},
	}
}
