package main

import (
	"os"

	"ustat/cmd/ustat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
