package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/habitquest/internal/database/postgres"
	"github.com/osse101/habitquest/internal/repository"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Task      repository.Task
	Character repository.Character
}

// InitializeRepositories creates the postgres repositories over one shared pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Task:      postgres.NewTaskRepository(dbPool),
		Character: postgres.NewCharacterRepository(dbPool),
	}
}
