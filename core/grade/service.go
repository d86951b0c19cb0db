package grade

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
)

var ErrNotFound = errors.New("grade not found")

type (
	Repository interface {
		List(ctx context.Context, page core.Page) ([]Grade, error)
		Get(ctx context.Context, id int) (Grade, error)
		Create(ctx context.Context, ng NewGrade) (Grade, error)
		Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) List(ctx context.Context, page core.Page) ([]Grade, error) {
	return svc.repo.List(ctx, page)
}

func (svc *Service) Get(ctx context.Context, id int) (Grade, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	return svc.repo.Create(ctx, ng)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	if err := ug.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	return svc.repo.Update(ctx, id, ug)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
