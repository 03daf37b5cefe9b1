package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/codecraft128/codecraft/cmd/codecraft/cmd"
	"github.com/codecraft128/codecraft/internal/version"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.GetRootCommand(),
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
