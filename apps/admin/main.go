package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	logsvc "github.com/arisha-glich/class-gecko-backend/services/logger"
	"github.com/arisha-glich/class-gecko-backend/storage/database"
	"github.com/arisha-glich/class-gecko-backend/storage/database/gormrepos"
)

var logger = zap.NewNop().Sugar()

func main() {
	conf := core.NewConfig()
	if err := conf.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logsvc.NewZap(conf)
	if err != nil {
		log.Fatalf("setting up zap: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger = zl.Named("admin").Sugar()

	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)

	cli := commandLine{conf: conf, validate: validate, translator: translator}

	// createdb runs before the application database exists
	if needsDB(os.Args) {
		db, err := database.Open(conf)
		errAndDie(err)
		sqlDB, err := db.DB()
		errAndDie(err)
		defer func() { _ = sqlDB.Close() }()

		cli.db = db
		cli.usrSvc = user.NewService(gormrepos.NewUserRepository(db))
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Printf("\nerror: %s\n", cli.describe(err))
		}
		os.Exit(1)
	}
}

func needsDB(args []string) bool {
	return len(args) > 1 && args[1] != "createdb"
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
