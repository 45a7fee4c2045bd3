// Command unbelongctl runs operator tasks against the store without the
// HTTP server: schema migration, admin credential setup and page checks.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
