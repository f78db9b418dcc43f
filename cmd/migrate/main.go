// Package main runs the database schema migration.
package main

import (
	"custodia/internal/config"
	"custodia/internal/repositories"

	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	db, err := repositories.OpenDB()
	if err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	logrus.Info("migration completed")
}
