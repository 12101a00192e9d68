package main

import (
	"os"

	"practice-kpi/cmd/practice-kpi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
