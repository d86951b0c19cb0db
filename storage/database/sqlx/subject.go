package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/subject"
)

type subjectRepository struct {
	db *sqlx.DB
}

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) List(ctx context.Context, page core.Page) ([]subject.Subject, error) {
	skip, limit := pageArgs(page)
	subjects := make([]subject.Subject, 0)
	if err := repo.db.SelectContext(ctx, &subjects, `SELECT id, nom AS name FROM matieres ORDER BY id OFFSET $1 LIMIT $2`, skip, limit); err != nil {
		return nil, dbError(err, subject.ErrNotFound, "listing subjects")
	}
	return subjects, nil
}

func (repo *subjectRepository) Get(ctx context.Context, id int) (subject.Subject, error) {
	var s subject.Subject
	if err := repo.db.GetContext(ctx, &s, `SELECT id, nom AS name FROM matieres WHERE id = $1`, id); err != nil {
		return subject.Subject{}, dbError(err, subject.ErrNotFound, "getting subject")
	}
	return s, nil
}

func (repo *subjectRepository) Create(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	var s subject.Subject
	err := repo.db.GetContext(ctx, &s, `INSERT INTO matieres (nom) VALUES ($1) RETURNING id, nom AS name`, ns.Name)
	if err != nil {
		return subject.Subject{}, dbError(err, subject.ErrNotFound, "creating subject")
	}
	return s, nil
}

func (repo *subjectRepository) Update(ctx context.Context, id int, us subject.UpdateSubject) (subject.Subject, error) {
	s, err := repo.Get(ctx, id)
	if err != nil {
		return subject.Subject{}, err
	}
	s = us.Apply(s)
	err = repo.db.GetContext(ctx, &s, `UPDATE matieres SET nom = $1 WHERE id = $2 RETURNING id, nom AS name`, s.Name, id)
	if err != nil {
		return subject.Subject{}, dbError(err, subject.ErrNotFound, "updating subject")
	}
	return s, nil
}

// Delete deletes the subject, its exams and their grades (ON DELETE CASCADE).
func (repo *subjectRepository) Delete(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM matieres WHERE id = $1`, id)
	if err != nil {
		return dbError(err, subject.ErrNotFound, "deleting subject")
	}
	return checkAffected(res, subject.ErrNotFound)
}
