package main

import (
	"os"

	"roundtable/cmd"
)

// @title        Roundtable API
// @version      1.0
// @description  Multi-model roundtable: augment a topic, collect independent answers, then cross-model reactions.
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
