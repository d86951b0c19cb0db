package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/grade"
)

type gradeRow struct {
	ID        int     `db:"id"`
	StudentID int     `db:"eleve_id"`
	ExamID    int     `db:"examen_id"`
	SubjectID int     `db:"matiere_id"`
	Value     float64 `db:"valeur"`
}

func (r gradeRow) toGrade() grade.Grade {
	return grade.Grade(r)
}

type gradeRepository struct {
	db *sqlx.DB
}

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) List(ctx context.Context, page core.Page) ([]grade.Grade, error) {
	skip, limit := pageArgs(page)
	var rows []gradeRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM notes ORDER BY id OFFSET $1 LIMIT $2`, skip, limit); err != nil {
		return nil, dbError(err, grade.ErrNotFound, "listing grades")
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.toGrade())
	}
	return grades, nil
}

func (repo *gradeRepository) Get(ctx context.Context, id int) (grade.Grade, error) {
	var row gradeRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM notes WHERE id = $1`, id); err != nil {
		return grade.Grade{}, dbError(err, grade.ErrNotFound, "getting grade")
	}
	return row.toGrade(), nil
}

func (repo *gradeRepository) Create(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	var row gradeRow
	err := repo.db.GetContext(ctx, &row,
		`INSERT INTO notes (eleve_id, examen_id, matiere_id, valeur) VALUES ($1, $2, $3, $4) RETURNING *`,
		ng.StudentID, ng.ExamID, ng.SubjectID, ng.Value,
	)
	if err != nil {
		return grade.Grade{}, dbError(err, grade.ErrNotFound, "creating grade")
	}
	return row.toGrade(), nil
}

func (repo *gradeRepository) Update(ctx context.Context, id int, ug grade.UpdateGrade) (grade.Grade, error) {
	g, err := repo.Get(ctx, id)
	if err != nil {
		return grade.Grade{}, err
	}
	g = ug.Apply(g)

	var row gradeRow
	err = repo.db.GetContext(ctx, &row,
		`UPDATE notes SET eleve_id = $1, examen_id = $2, matiere_id = $3, valeur = $4 WHERE id = $5 RETURNING *`,
		g.StudentID, g.ExamID, g.SubjectID, g.Value, id,
	)
	if err != nil {
		return grade.Grade{}, dbError(err, grade.ErrNotFound, "updating grade")
	}
	return row.toGrade(), nil
}

func (repo *gradeRepository) Delete(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return dbError(err, grade.ErrNotFound, "deleting grade")
	}
	return checkAffected(res, grade.ErrNotFound)
}
