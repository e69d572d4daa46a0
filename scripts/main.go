package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/flexprice/pricing/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "validate-catalog",
		Description: "Load and validate a tax rule and coupon catalog",
		Run:         internal.ValidateCatalog,
	},
	{
		Name:        "quote",
		Description: "Price a quote request from a JSON file",
		Run:         internal.PriceQuote,
	},
}

func main() {
	// Define command line flags
	var (
		listCommands bool
		cmdName      string
		catalogFile  string
		quoteFile    string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&catalogFile, "catalog-file", "", "Path to catalog JSON file")
	flag.StringVar(&quoteFile, "quote-file", "", "Path to quote request JSON file")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if catalogFile != "" {
		os.Setenv("CATALOG_FILE", catalogFile)
	}
	if quoteFile != "" {
		os.Setenv("QUOTE_FILE", quoteFile)
	}

	// Find and run the command
	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
