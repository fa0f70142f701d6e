package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/advocate-tools/legal-case-manager/auth"
	"github.com/advocate-tools/legal-case-manager/config"
	"github.com/advocate-tools/legal-case-manager/databases"
	"github.com/advocate-tools/legal-case-manager/scheduler"
)

func main() {
	conf := config.New()

	store, err := databases.NewSQLiteStore(conf)
	if err != nil {
		zap.S().Fatalw("failed to open store", "error", err, "path", conf.StorePath)
	}

	userDB := databases.NewUserDatabase(store)
	caseDB := databases.NewCaseDatabase(store)
	settingsDB := databases.NewSettingsDatabase(store)

	if err := auth.New(userDB).Bootstrap(context.Background()); err != nil {
		zap.S().Fatalw("failed to seed users", "error", err)
	}

	sched := scheduler.New(store, caseDB, userDB, settingsDB, scheduler.LogNotifier{})
	sched.Start()

	zap.S().Infow("legal case manager is up and running",
		"store", conf.StorePath,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sched.Stop()
}
