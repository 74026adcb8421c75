// Chatlens - Chat Export Analysis Tool
//
// Chatlens parses exported chat transcripts into structured records and
// reports activity statistics. Lines that don't parse are skipped, not
// fatal.
package main

import (
	"os"

	"github.com/ccollicutt/chatlens/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
