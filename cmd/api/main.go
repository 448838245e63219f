package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "inkspiration",
		Short: "Booking backend for tattoo studios.",
		Long: `Inkspiration serves professional profiles, portfolios, availability,
appointments and ratings over a JSON API.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
