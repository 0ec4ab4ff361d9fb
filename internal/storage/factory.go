package storage

import "github.com/AlexanderModestov/baby-sleep-pred/internal"

// Storage is the full set of repositories plus lifecycle control.
type Storage interface {
	UserRepository
	ChildRepository
	SessionRepository
	Close() error
}

func NewSQLite(path string, logger internal.Logger) (Storage, error) {
	return NewSQLiteStorage(path, logger)
}

func NewPostgres(dsn string, logger internal.Logger) (Storage, error) {
	return NewPostgresStorage(dsn, logger)
}
