package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/portico/internal/cli"
	"github.com/arthur-debert/portico/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		os.Exit(1)
	}
}
