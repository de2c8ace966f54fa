package main

import (
	"os"

	"github.com/aranaskd/blogctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
