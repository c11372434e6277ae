// Command manipulate is a scriptable demonstration shell for the
// manipulator engine: it loads a configuration, builds the selected
// profile's manager, and can replay or validate it without a real
// device-capture environment.
package main

import (
	"fmt"
	"os"

	"github.com/gookit/gcli/v2"

	"github.com/karabiner-go/manipulator/internal/app"
	"github.com/karabiner-go/manipulator/internal/logx"
)

const (
	appName        = "manipulate"
	appVersion     = "0.1.0"
	appDescription = "karabiner-style keyboard/mouse manipulator engine"
)

func main() {
	logFile, err := logx.Bootstrap(app.LogDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, "manipulate: failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	cli := gcli.NewApp()
	cli.Name = appName
	cli.Version = appVersion
	cli.Description = appDescription

	cli.Add(newRunCommand())
	cli.Add(newConfigCommand())
	cli.Add(newConfigSelectCommand())
	cli.Add(newValidateCommand())

	os.Exit(cli.Run())
}
