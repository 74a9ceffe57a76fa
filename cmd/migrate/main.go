package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/iffarurrahat/matrimony-server-mern-project/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		command    = flag.String("command", "up", "Migration command: up, down, version")
		dir        = flag.String("dir", "migrations", "Migrations directory")
		configPath = flag.String("config", "env.yaml", "Config file path")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	m, err := migrate.New("file://"+*dir, migrateDSN(cfg.DB.URL))
	if err != nil {
		log.Fatalf("creating migrate instance: %v", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration up failed: %v", err)
		}
		fmt.Println("migrations applied")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration down failed: %v", err)
		}
		fmt.Println("migrations rolled back")
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("failed to get version: %v", err)
		}
		if dirty {
			log.Fatalf("database is in a dirty state (version %d)", v)
		}
		fmt.Printf("current migration version: %d\n", v)
	default:
		log.Fatalf("unknown command: %s (supported: up, down, version)", *command)
	}
}

// migrateDSN maps the pool URL onto the scheme the migrate pgx driver expects.
func migrateDSN(dbURL string) string {
	if rest, ok := strings.CutPrefix(dbURL, "postgres://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(dbURL, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	return dbURL
}
