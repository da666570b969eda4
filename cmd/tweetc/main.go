// Command tweetc compiles action instructions into an ordered action trace.
//
//	tweetc run -e "punch left. walk right. Do jump left 3 times."
//	tweetc --format json run combo.lua
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		slog.Error("tweetc failed", "error", err)
		os.Exit(1)
	}
}
