package main

import (
	"os"

	"github.com/harrisonrobin/dayplan/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
