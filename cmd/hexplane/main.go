package main

import (
	"os"

	"github.com/gravitas-015/hexplane/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
