// Command crony lists the jobs of a crontab that run within a time window.
package main

import (
	"os"

	"github.com/its-lee/crony/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(cli.NewApp(version), os.Args[1:]))
}
