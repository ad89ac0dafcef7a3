package main

import (
	"context"
	"fmt"
	"os"
)

const defaultVersion = "dev"

// Version information (set by GoReleaser)
var (
	version = defaultVersion
	_       = "none"    // commit - set by GoReleaser but not used
	_       = "unknown" // date - set by GoReleaser but not used
)

func main() {
	initVersion()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
