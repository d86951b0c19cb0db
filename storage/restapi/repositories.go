package restapi

import (
	"context"
	"net/http"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

const (
	studentsPath = "/eleves/"
	subjectsPath = "/matieres/"
	examsPath    = "/examens/"
	gradesPath   = "/notes/"
)

// resource is the CRUD client of one API resource:
// T is the resource, N its creation payload and U its update payload.
type resource[T any, N any, U any] struct {
	c    *Client
	path string
}

func (r resource[T, N, U]) List(ctx context.Context, page core.Page) ([]T, error) {
	var items []T
	if err := r.c.do(ctx, http.MethodGet, r.path, r.c.pageQuery(page), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r resource[T, N, U]) Get(ctx context.Context, id int) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodGet, itemPath(r.path, id), nil, nil, &item)
	return item, err
}

func (r resource[T, N, U]) Create(ctx context.Context, payload N) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodPost, r.path, nil, payload, &item)
	return item, err
}

func (r resource[T, N, U]) Update(ctx context.Context, id int, payload U) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodPut, itemPath(r.path, id), nil, payload, &item)
	return item, err
}

func (r resource[T, N, U]) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, http.MethodDelete, itemPath(r.path, id), nil, nil, nil)
}

type (
	StudentRepository struct {
		resource[student.Student, student.NewStudent, student.UpdateStudent]
	}
	SubjectRepository struct {
		resource[subject.Subject, subject.NewSubject, subject.UpdateSubject]
	}
	ExamRepository struct {
		resource[exam.Exam, exam.NewExam, exam.UpdateExam]
	}
	GradeRepository struct {
		resource[grade.Grade, grade.NewGrade, grade.UpdateGrade]
	}
)

var (
	_ student.Repository = (*StudentRepository)(nil)
	_ subject.Repository = (*SubjectRepository)(nil)
	_ exam.Repository    = (*ExamRepository)(nil)
	_ grade.Repository   = (*GradeRepository)(nil)
)
