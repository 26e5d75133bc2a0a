package repo

import "github.com/mherrera-dev/refaccionaria/internal/models"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetByUsername(usuario string) (models.User, error)
	GetByID(id int) (models.User, error)
	Create(u models.User) (models.User, error)
	Count() (int, error)
}
