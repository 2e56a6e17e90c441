package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/josh-kwaku/travelmate/internal/repository"
)

type migrateCmd struct {
	dir string
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `tripctl migrate [-dir <path>]

  Applies every migrations/*.up.sql file not yet recorded in
  schema_migrations, in file-name order.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "Migrations directory. Defaults to MIGRATIONS_DIR.")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, db, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	dir := c.dir
	if dir == "" {
		dir = cfg.MigrationsDir
	}

	applied, err := repository.Migrate(ctx, db, dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if len(applied) == 0 {
		fmt.Println("schema is up to date")
		return subcommands.ExitSuccess
	}
	for _, name := range applied {
		fmt.Println("applied", name)
	}
	return subcommands.ExitSuccess
}
