// Package main provides the dualad CLI.
package main

import (
	"os"

	"github.com/born-ml/dualad/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
