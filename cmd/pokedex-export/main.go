// Package main provides the pokedex-export CLI application.
// pokedex-export builds a denormalized CSV of pokedex entries from the
// PokeAPI REST service.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
