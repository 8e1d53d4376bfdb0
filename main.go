package main

import (
	"os"

	"sitemap-urls/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
