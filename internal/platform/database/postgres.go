package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// NewPostgresDB opens a connection pool against the given DSN, retrying
// while the database container comes up.
func NewPostgresDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	maxRetries := 10

	for i := 1; i <= maxRetries; i++ {
		log.Printf("Connecting to database (Attempt %d/%d)...", i, maxRetries)
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			log.Println("Database connected successfully!")
			return db, nil
		}

		log.Printf("Database not ready yet. Waiting 2 seconds...")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %v", maxRetries, err)
}
