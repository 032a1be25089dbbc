package service

import (
	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/store"
)

type Services struct {
	UserService UserService
	ListService ListService
	TaskService TaskService
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	userService := NewUserService(storages.UserRepository, logger)
	listService := NewListService(storages.ListRepository, userService, logger)
	taskService := NewTaskService(storages.TaskRepository, userService, listService, logger)

	return &Services{
		UserService: userService,
		ListService: listService,
		TaskService: taskService,
	}
}
