package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	ProfileRepository     *ProfileRepository
	RoleRepository        *RoleRepository
	DepartmentRepository  *DepartmentRepository
	ResourceRepository    *ResourceRepository
	ArticleRepository     *ArticleRepository
	InteractionRepository *InteractionRepository
	TokenRepository       *TokenRepository
	ChatRepository        *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ProfileRepository:     NewProfileRepository(db),
		RoleRepository:        NewRoleRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		ResourceRepository:    NewResourceRepository(db),
		ArticleRepository:     NewArticleRepository(db),
		InteractionRepository: NewInteractionRepository(db),
		TokenRepository:       NewTokenRepository(db),
		ChatRepository:        NewChatRepository(db),
	}
}
