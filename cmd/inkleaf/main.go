package main

import (
	"fmt"
	"os"

	"github.com/mithrel/inkleaf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "inkleaf:", err)
		os.Exit(1)
	}
}
