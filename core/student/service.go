package student

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		List(ctx context.Context, page core.Page) ([]Student, error)
		Get(ctx context.Context, id int) (Student, error)
		Create(ctx context.Context, ns NewStudent) (Student, error)
		Update(ctx context.Context, id int, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, id int) error
	}

	// Service validates payloads before handing them to the Repository:
	// an invalid payload never reaches the network.
	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) List(ctx context.Context, page core.Page) ([]Student, error) {
	return svc.repo.List(ctx, page)
}

func (svc *Service) Get(ctx context.Context, id int) (Student, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	return svc.repo.Create(ctx, ns)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	return svc.repo.Update(ctx, id, us)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
