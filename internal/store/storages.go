package store

import "github.com/avelara/go-todo-keeper/internal/logger"

// Storages bundles every repository behind one value handed to the service
// layer at startup.
type Storages struct {
	UserRepository UserRepository
	ListRepository ListRepository
	TaskRepository TaskRepository
}

// NewStorages constructs all repositories over the shared database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		ListRepository: NewListRepository(db, logger),
		TaskRepository: NewTaskRepository(db, logger),
	}
}
