package main

import (
	"fmt"
	"os"

	"github.com/sqve/git-artifact/cmd/git-artifact/commands"
	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/styles"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.IsConfigurationError(err) {
			fmt.Fprintln(os.Stderr, "The repository was not modified.")
		}
		fmt.Fprintln(os.Stderr, styles.Render(&styles.Error, "Deployment failed."))
		os.Exit(1)
	}
}
