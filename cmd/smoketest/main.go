package main

import (
	"os"

	"github.com/stackmesa/backend-api/cmd/smoketest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
