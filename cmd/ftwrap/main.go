// Command ftwrap trains and queries fastText models from the command line.
package main

import (
	"os"

	"github.com/custodia-labs/ftwrap/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
