package inmemdb

import (
	"context"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
)

type examRepository struct {
	db *DB
}

// NewExamRepository returns a repository of exams; exams are returned with their subject and grades.
func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) List(_ context.Context, page core.Page) ([]exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exams := values(repo.db.exams, page, func(e exam.Exam) int { return e.ID })
	for i := range exams {
		exams[i] = repo.db.withRelations(exams[i])
	}
	return exams, nil
}

func (repo *examRepository) Get(_ context.Context, id int) (exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.exams[id]; ok {
		return repo.db.withRelations(e), nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) Create(_ context.Context, ne exam.NewExam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount.exam++
	e := exam.Exam{ID: repo.db.pkCount.exam, SubjectID: ne.SubjectID, Date: ne.Date}
	repo.db.exams[e.ID] = e
	return repo.db.withRelations(e), nil
}

func (repo *examRepository) Update(_ context.Context, id int, ue exam.UpdateExam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e, ok := repo.db.exams[id]
	if !ok {
		return exam.Exam{}, exam.ErrNotFound
	}
	e = ue.Apply(e)
	e.Subject, e.Grades = nil, nil
	repo.db.exams[id] = e
	return repo.db.withRelations(e), nil
}

func (repo *examRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.exams[id]; !ok {
		return exam.ErrNotFound
	}
	repo.db.deleteExam(id)
	return nil
}
