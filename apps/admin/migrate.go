package main

import (
	"context"

	"github.com/arisha-glich/class-gecko-backend/storage/database"
)

var (
	gooseRunFunc = database.Migrate          // mockable
	createDBFunc = database.CreateIfNotExist // mockable
)

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(context.Background(), cli.db, args[0], arguments...)
}

func (cli *commandLine) createDB() error {
	if err := createDBFunc(cli.conf); err != nil {
		return err
	}
	logger.Infof("database %q is ready", cli.conf.Database.Name)
	return nil
}
