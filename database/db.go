package database

// Storage is the persistence boundary the app is wired against
type Storage interface {
	Init() error
	Close() error
	GetDB() interface{}
}
