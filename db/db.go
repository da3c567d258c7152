package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	Memory   DBType = "memory"
)

// DB is a connection that the server opens at start and closes on shutdown.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
