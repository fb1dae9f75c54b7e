// Command estimator prints the Estimator reports from the terminal.
package main

import (
	"os"

	"Estimator/cmd/estimator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
