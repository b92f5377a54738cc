// main is the entry point for the integral CLI.
package main

import (
	"github.com/huangsam/integral/cmd"
	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	history.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
