package users

import (
	"context"

	"github.com/saciinol/watchkeeper/internal/models"
	srvmodels "github.com/saciinol/watchkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *srvmodels.User) (*srvmodels.User, error)
	GetByEmail(ctx context.Context, email string) (*srvmodels.User, error)
	GetByID(ctx context.Context, id models.UserID) (*srvmodels.User, error)
}
