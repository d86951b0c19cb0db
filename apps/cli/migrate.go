package main

import (
	"github.com/trezcool/carnet/storage/database"
)

var migrateFunc = runMigration // mockable

// migrate runs a goose command on the database of the API (database.url).
func (cli *commandLine) migrate(command string, args []string) error {
	return migrateFunc(cli, command, args...)
}

func runMigration(cli *commandLine, command string, args ...string) error {
	db, err := database.Open(cli.ctx, cli.conf)
	if err != nil {
		return err
	}
	defer db.Close()
	return database.Run(command, db, args...)
}
