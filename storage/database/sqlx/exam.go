package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/subject"
)

type examRow struct {
	ID        int    `db:"id"`
	SubjectID int    `db:"matiere_id"`
	Date      string `db:"date"`
}

type examRepository struct {
	db *sqlx.DB
}

// NewExamRepository returns a repository of exams; exams are returned with their subject and grades.
func NewExamRepository(db *sqlx.DB) exam.Repository {
	return &examRepository{db: db}
}

// withRelations loads the subjects and grades of rows in two queries.
func (repo *examRepository) withRelations(ctx context.Context, rows []examRow) ([]exam.Exam, error) {
	exams := make([]exam.Exam, 0, len(rows))
	if len(rows) == 0 {
		return exams, nil
	}
	examIDs := make([]int, 0, len(rows))
	subjectIDs := make([]int, 0, len(rows))
	for _, r := range rows {
		examIDs = append(examIDs, r.ID)
		subjectIDs = append(subjectIDs, r.SubjectID)
	}

	var subjects []subject.Subject
	q, args, err := sqlx.In(`SELECT id, nom AS name FROM matieres WHERE id IN (?)`, subjectIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building subjects query")
	}
	if err = repo.db.SelectContext(ctx, &subjects, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting exam subjects")
	}
	subjectByID := make(map[int]subject.Subject, len(subjects))
	for _, s := range subjects {
		subjectByID[s.ID] = s
	}

	var grades []gradeRow
	q, args, err = sqlx.In(`SELECT * FROM notes WHERE examen_id IN (?) ORDER BY id`, examIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building grades query")
	}
	if err = repo.db.SelectContext(ctx, &grades, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting exam grades")
	}
	gradesByExam := make(map[int][]grade.Grade, len(rows))
	for _, g := range grades {
		gradesByExam[g.ExamID] = append(gradesByExam[g.ExamID], g.toGrade())
	}

	for _, r := range rows {
		e := exam.Exam{ID: r.ID, SubjectID: r.SubjectID, Date: r.Date, Grades: gradesByExam[r.ID]}
		if s, ok := subjectByID[r.SubjectID]; ok {
			e.Subject = &s
		}
		exams = append(exams, e)
	}
	return exams, nil
}

func (repo *examRepository) one(ctx context.Context, row examRow) (exam.Exam, error) {
	exams, err := repo.withRelations(ctx, []examRow{row})
	if err != nil {
		return exam.Exam{}, err
	}
	return exams[0], nil
}

func (repo *examRepository) List(ctx context.Context, page core.Page) ([]exam.Exam, error) {
	skip, limit := pageArgs(page)
	var rows []examRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM examens ORDER BY id OFFSET $1 LIMIT $2`, skip, limit); err != nil {
		return nil, dbError(err, exam.ErrNotFound, "listing exams")
	}
	return repo.withRelations(ctx, rows)
}

func (repo *examRepository) Get(ctx context.Context, id int) (exam.Exam, error) {
	var row examRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM examens WHERE id = $1`, id); err != nil {
		return exam.Exam{}, dbError(err, exam.ErrNotFound, "getting exam")
	}
	return repo.one(ctx, row)
}

func (repo *examRepository) Create(ctx context.Context, ne exam.NewExam) (exam.Exam, error) {
	var row examRow
	err := repo.db.GetContext(ctx, &row, `INSERT INTO examens (matiere_id, date) VALUES ($1, $2) RETURNING *`, ne.SubjectID, ne.Date)
	if err != nil {
		return exam.Exam{}, dbError(err, exam.ErrNotFound, "creating exam")
	}
	return repo.one(ctx, row)
}

func (repo *examRepository) Update(ctx context.Context, id int, ue exam.UpdateExam) (exam.Exam, error) {
	var row examRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM examens WHERE id = $1`, id); err != nil {
		return exam.Exam{}, dbError(err, exam.ErrNotFound, "getting exam")
	}
	e := ue.Apply(exam.Exam{ID: row.ID, SubjectID: row.SubjectID, Date: row.Date})

	err := repo.db.GetContext(ctx, &row, `UPDATE examens SET matiere_id = $1, date = $2 WHERE id = $3 RETURNING *`, e.SubjectID, e.Date, id)
	if err != nil {
		return exam.Exam{}, dbError(err, exam.ErrNotFound, "updating exam")
	}
	return repo.one(ctx, row)
}

// Delete deletes the exam and its grades (ON DELETE CASCADE).
func (repo *examRepository) Delete(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM examens WHERE id = $1`, id)
	if err != nil {
		return dbError(err, exam.ErrNotFound, "deleting exam")
	}
	return checkAffected(res, exam.ErrNotFound)
}
