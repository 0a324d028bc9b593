// Command shramba runs the personal inventory server and its maintenance
// commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "shramba",
		Usage: "Personal inventory vault",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env", Value: ".env", Usage: "dotenv file with SHRAMBA_* settings"},
			&cli.StringFlag{Name: "db", Aliases: []string{"d"}, Usage: "SQLite database path (SHRAMBA_DB)"},
			&cli.StringFlag{Name: "store", Usage: "storage backend: sqlite or memory (SHRAMBA_STORE)"},
			&cli.StringFlag{Name: "uploads", Usage: "directory for photos and receipts (SHRAMBA_UPLOADS)"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Usage: "also append logs to this file (SHRAMBA_LOG)"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			exportCommand(),
			seedCommand(),
		},
		Action: runServe,
	}
}
