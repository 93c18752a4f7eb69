package main

import (
	"context"
	"log"
	"os"

	"github.com/tutorren/desk/apps/shared"
	"github.com/tutorren/desk/core"
	emailsvc "github.com/tutorren/desk/services/email"
	logsvc "github.com/tutorren/desk/services/logger"
	"github.com/tutorren/desk/storage"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up store
	store, err := storage.Open(context.Background(), conf.Storage, logger)
	if err != nil {
		logger.Fatal("opening store", err)
	}

	// set up services
	mailSvc, err := emailsvc.NewService(conf, os.Stdout)
	if err != nil {
		logger.Fatal("setting up email service", err)
	}
	core.ParseEmailTemplates(logger, conf.TestMode)

	// start CLI
	cli := commandLine{
		conf:  conf,
		store: store,
		svcs:  shared.NewServices(conf, store, mailSvc, logger),
		out:   os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := store.Close(); cErr != nil {
		logger.Error("closing store", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed: "+err.Error(), err)
		}
		os.Exit(1)
	}
}
