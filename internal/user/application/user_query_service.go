package application

import (
	"context"

	"github.com/wyfcoding/eshop/internal/user/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
)

type UserQueryService struct {
	repo domain.UserRepository
}

func NewUserQueryService(repo domain.UserRepository) *UserQueryService {
	return &UserQueryService{repo: repo}
}

func (s *UserQueryService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound(errs.CodeUserNotFound, "User not found")
	}
	return user, nil
}
