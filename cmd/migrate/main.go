package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/yourusername/classboard-api/internal/config"
)

// Утилита для ручного управления миграциями: накат, откат и
// сброс "грязного" состояния после неудачной миграции.
func main() {
	var (
		down  = flag.Bool("down", false, "откатить одну миграцию")
		force = flag.Int("force", -1, "принудительно установить версию (сбрасывает dirty-флаг)")
	)
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *force >= 0:
		log.Printf("Принудительная установка версии %d...", *force)
		if err := m.Force(*force); err != nil {
			log.Fatalf("Failed to force version: %v", err)
		}
	case *down:
		log.Println("Откат одной миграции...")
		if err := m.Steps(-1); err != nil {
			log.Fatalf("Failed to rollback: %v", err)
		}
	default:
		log.Println("Применение миграций...")
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Failed to migrate: %v", err)
		}
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to read version: %v", err)
	}
	log.Printf("Текущая версия: %d, dirty: %t", version, dirty)
}
