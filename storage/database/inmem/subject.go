package inmemdb

import (
	"context"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/subject"
)

type subjectRepository struct {
	db *DB
}

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) List(_ context.Context, page core.Page) ([]subject.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return values(repo.db.subjects, page, func(s subject.Subject) int { return s.ID }), nil
}

func (repo *subjectRepository) Get(_ context.Context, id int) (subject.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.subjects[id]; ok {
		return s, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) Create(_ context.Context, ns subject.NewSubject) (subject.Subject, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount.subject++
	s := subject.Subject{ID: repo.db.pkCount.subject, Name: ns.Name}
	repo.db.subjects[s.ID] = s
	return s, nil
}

func (repo *subjectRepository) Update(_ context.Context, id int, us subject.UpdateSubject) (subject.Subject, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.subjects[id]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	s = us.Apply(s)
	repo.db.subjects[id] = s
	return s, nil
}

func (repo *subjectRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.subjects[id]; !ok {
		return subject.ErrNotFound
	}
	delete(repo.db.subjects, id)
	for eid, e := range repo.db.exams {
		if e.SubjectID == id {
			repo.db.deleteExam(eid)
		}
	}
	for gid, g := range repo.db.grades {
		if g.SubjectID == id {
			delete(repo.db.grades, gid)
		}
	}
	return nil
}
