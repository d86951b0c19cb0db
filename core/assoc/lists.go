package assoc

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

// WholePageSize is the page size used to walk a whole list.
const WholePageSize = 100

// Kind names one of the four lists.
type Kind int

const (
	KindStudents Kind = iota + 1
	KindSubjects
	KindExams
	KindGrades
)

type (
	StudentLister interface {
		List(ctx context.Context, page core.Page) ([]student.Student, error)
	}
	SubjectLister interface {
		List(ctx context.Context, page core.Page) ([]subject.Subject, error)
	}
	ExamLister interface {
		List(ctx context.Context, page core.Page) ([]exam.Exam, error)
	}
	GradeLister interface {
		List(ctx context.Context, page core.Page) ([]grade.Grade, error)
	}

	// Sources are the lists a screen needs; nil sources are not fetched.
	// Primary is the list the screen pages through; the others are fetched whole
	// so that every reference of the page resolves (zero: every list is fetched whole).
	Sources struct {
		Primary  Kind
		Students StudentLister
		Subjects SubjectLister
		Exams    ExamLister
		Grades   GradeLister
	}

	// Lists is the result of one fetch cycle.
	Lists struct {
		Students []student.Student
		Subjects []subject.Subject
		Exams    []exam.Exam
		Grades   []grade.Grade
	}
)

// FetchLists fetches the lists of src in parallel: page applies to the primary list only.
// These are the primary data of a screen: the first failure fails the whole cycle.
func FetchLists(ctx context.Context, src Sources, page core.Page) (Lists, error) {
	var lists Lists
	g, gctx := errgroup.WithContext(ctx)
	if src.Students != nil {
		g.Go(func() (err error) {
			lists.Students, err = fetch(gctx, src.Students.List, src.pageOf(KindStudents, page))
			return errors.Wrap(err, "listing students")
		})
	}
	if src.Subjects != nil {
		g.Go(func() (err error) {
			lists.Subjects, err = fetch(gctx, src.Subjects.List, src.pageOf(KindSubjects, page))
			return errors.Wrap(err, "listing subjects")
		})
	}
	if src.Exams != nil {
		g.Go(func() (err error) {
			lists.Exams, err = fetch(gctx, src.Exams.List, src.pageOf(KindExams, page))
			return errors.Wrap(err, "listing exams")
		})
	}
	if src.Grades != nil {
		g.Go(func() (err error) {
			lists.Grades, err = fetch(gctx, src.Grades.List, src.pageOf(KindGrades, page))
			if err == nil && lists.Grades == nil {
				lists.Grades = []grade.Grade{}
			}
			return errors.Wrap(err, "listing grades")
		})
	}
	if err := g.Wait(); err != nil {
		return Lists{}, err
	}
	return lists, nil
}

func (src Sources) pageOf(kind Kind, page core.Page) *core.Page {
	if kind != src.Primary {
		return nil
	}
	return &page
}

// fetch gets one page of list, or the whole list when page is nil.
func fetch[T any](ctx context.Context, list func(context.Context, core.Page) ([]T, error), page *core.Page) ([]T, error) {
	if page != nil {
		return list(ctx, *page)
	}
	return ListAll(ctx, list)
}

// ListAll walks list page by page until a short page.
func ListAll[T any](ctx context.Context, list func(context.Context, core.Page) ([]T, error)) ([]T, error) {
	var all []T
	page := core.Page{Limit: WholePageSize}
	for {
		items, err := list(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < page.Limit {
			return all, nil
		}
		page.Skip += len(items)
	}
}

// Index builds the lookup tables of the lists.
func (l Lists) Index() *Index {
	return NewIndex(l.Students, l.Subjects, l.Exams, l.Grades)
}
