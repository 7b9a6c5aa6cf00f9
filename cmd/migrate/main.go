// Command migrate aplica o revierte el esquema de la base de datos.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate version
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	dsn := cfg.DB.ConnectionString()

	switch cmd {
	case "up":
		err = postgres.MigrateUp(dsn)
	case "down":
		err = postgres.MigrateDown(dsn)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = postgres.MigrateVersion(dsn)
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
			return
		}
	default:
		fmt.Fprintf(os.Stderr, "uso: migrate [up|down|version]\n")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", cmd).Msg("migración completada")
}
