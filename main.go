package main

import (
	"os"

	"github.com/abhisek/clipvocab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
