// mapconv converts a map description between TOML and YAML and reports
// references that would be skipped at spawn time.
package main

import (
	"fmt"
	"os"

	"github.com/redrock/engine/internal/data"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mapconv <input.toml|yaml> [output.toml|yaml]")
		os.Exit(1)
	}

	m, err := data.LoadMap(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	objects, physics := m.Count()
	fmt.Printf("%s: %d objects, %d physics tags, %d scenery placements\n",
		os.Args[1], objects, physics, len(m.Scenario.Scenery))

	problems := m.Problems()
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "warning: %s\n", p)
	}

	if len(os.Args) < 3 {
		// check only
		if len(problems) > 0 {
			os.Exit(2)
		}
		return
	}

	if err := data.SaveMap(m, os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Written to %s\n", os.Args[2])
}
