package main

import (
	"fmt"
	"os"

	"github.com/Abraxas-365/stagetrack/pkg/stagectl"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	stagectl.SetVersion(Version)
	if err := stagectl.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
