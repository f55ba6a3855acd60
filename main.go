package main

import (
	"os"

	"github.com/hireloop/intervue/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
