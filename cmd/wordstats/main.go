// Command wordstats counts words in uploaded documents and serves the
// statistics over HTTP.
package main

import (
	"os"

	"github.com/custodia-labs/wordstats/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
