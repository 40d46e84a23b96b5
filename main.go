package main

import (
	"os"

	"github.com/beplus/beplus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
