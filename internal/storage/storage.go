package storage

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/carson-networks/insight-server/internal/config"
	"github.com/carson-networks/insight-server/internal/storage/corrections"
)

type Storage struct {
	DB          *sql.DB
	Corrections *corrections.Table
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	return &Storage{
		DB:          db,
		Corrections: corrections.NewTable(db),
	}
}
