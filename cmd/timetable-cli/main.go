package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
