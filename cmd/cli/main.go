package main

import (
	"fmt"
	"os"

	_ "github.com/paulr25/bp-tracker/cmd/cli/auth"
	_ "github.com/paulr25/bp-tracker/cmd/cli/importcsv"
	_ "github.com/paulr25/bp-tracker/cmd/cli/readings"
	"github.com/paulr25/bp-tracker/cmd/cli/root"
	_ "github.com/paulr25/bp-tracker/cmd/cli/users"
)

func main() {
	// Execute the root Cobra command; subcommands register themselves in init().
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
