package inmemdb

import (
	"context"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/grade"
)

type gradeRepository struct {
	db *DB
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) List(_ context.Context, page core.Page) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return values(repo.db.grades, page, func(g grade.Grade) int { return g.ID }), nil
}

func (repo *gradeRepository) Get(_ context.Context, id int) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if g, ok := repo.db.grades[id]; ok {
		return g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) Create(_ context.Context, ng grade.NewGrade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount.grade++
	g := grade.Grade{
		ID:        repo.db.pkCount.grade,
		StudentID: ng.StudentID,
		ExamID:    ng.ExamID,
		SubjectID: ng.SubjectID,
		Value:     ng.Value,
	}
	repo.db.grades[g.ID] = g
	return g, nil
}

func (repo *gradeRepository) Update(_ context.Context, id int, ug grade.UpdateGrade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	g, ok := repo.db.grades[id]
	if !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	g = ug.Apply(g)
	repo.db.grades[id] = g
	return g, nil
}

func (repo *gradeRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.grades[id]; !ok {
		return grade.ErrNotFound
	}
	delete(repo.db.grades, id)
	return nil
}
