package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Open ouvre la connexion à l'entrepôt PostgreSQL et vérifie qu'elle répond.
// Le handle est passé explicitement aux repositories, pas de variable globale
func Open(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Pool de connexions : le pipeline est mono-run, le pool reste petit
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
