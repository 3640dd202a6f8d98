package main

import (
	"fmt"

	"github.com/mcdev12/quizhost/go/internal/config"
	"github.com/mcdev12/quizhost/go/internal/dbconfig"
)

type Config struct {
	Server   config.Server
	Database dbconfig.Config
}

func loadConfig() (*Config, error) {
	server, err := config.LoadServer()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	var database dbconfig.Config
	if server.StoreDriver == config.StoreDriverPostgres {
		database, err = dbconfig.NewConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}
	}

	return &Config{Server: server, Database: database}, nil
}
