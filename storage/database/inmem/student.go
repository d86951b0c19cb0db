package inmemdb

import (
	"context"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) List(_ context.Context, page core.Page) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return values(repo.db.students, page, func(s student.Student) int { return s.ID }), nil
}

func (repo *studentRepository) Get(_ context.Context, id int) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) Create(_ context.Context, ns student.NewStudent) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := nowFunc()
	repo.db.pkCount.student++
	s := student.Student{
		ID:        repo.db.pkCount.student,
		LastName:  ns.LastName,
		FirstName: ns.FirstName,
		Class:     ns.Class,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	repo.db.students[s.ID] = s
	return s, nil
}

func (repo *studentRepository) Update(_ context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	s = us.Apply(s)
	now := nowFunc()
	s.UpdatedAt = &now
	repo.db.students[id] = s
	return s, nil
}

func (repo *studentRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.students, id)
	for gid, g := range repo.db.grades {
		if g.StudentID == id {
			delete(repo.db.grades, gid)
		}
	}
	return nil
}
