package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/apps/api/di"
	echoapi "github.com/arisha-glich/class-gecko-backend/apps/api/echo"
	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/term"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	logsvc "github.com/arisha-glich/class-gecko-backend/services/logger"
	"github.com/arisha-glich/class-gecko-backend/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	if err := conf.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// set up loggers
	zl, err := logsvc.NewZap(conf)
	if err != nil {
		log.Fatalf("setting up zap: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("getting database handle: %v", err), err)
	}
	defer func() {
		if err = sqlDB.Close(); err != nil {
			logger.Fatal("Failed to close", err)
		}
	}()
	xdb, err := database.SQLx(db)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up sqlx: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	term.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     logger,
		Zap:        zl,
		Validate:   validate,
		Translator: translator,
		Services:   di.NewServices(db, xdb),
	})

	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address))
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(conf *core.Config) (*gorm.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(context.Background(), db, "up"); err != nil {
		return nil, err
	}
	return db, nil
}
