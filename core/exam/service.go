package exam

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
)

var ErrNotFound = errors.New("exam not found")

type (
	Repository interface {
		List(ctx context.Context, page core.Page) ([]Exam, error)
		Get(ctx context.Context, id int) (Exam, error)
		Create(ctx context.Context, ne NewExam) (Exam, error)
		Update(ctx context.Context, id int, ue UpdateExam) (Exam, error)
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

func (svc *Service) List(ctx context.Context, page core.Page) ([]Exam, error) {
	return svc.repo.List(ctx, page)
}

func (svc *Service) Get(ctx context.Context, id int) (Exam, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	if err := ne.Validate(svc.validate); err != nil {
		return Exam{}, err
	}
	return svc.repo.Create(ctx, ne)
}

func (svc *Service) Update(ctx context.Context, id int, ue UpdateExam) (Exam, error) {
	if err := ue.Validate(svc.validate); err != nil {
		return Exam{}, err
	}
	return svc.repo.Update(ctx, id, ue)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
