package assoc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

// DefaultConcurrency bounds the dependent fetches running at once.
const DefaultConcurrency = 8

type (
	StudentGetter interface {
		Get(ctx context.Context, id int) (student.Student, error)
	}
	SubjectGetter interface {
		Get(ctx context.Context, id int) (subject.Subject, error)
	}
	ExamGetter interface {
		Get(ctx context.Context, id int) (exam.Exam, error)
	}
)

// Resolver decorates records by fetching each referenced record by id.
// A failed dependent fetch is logged and replaced by a placeholder: it never fails the whole load.
// Within one call every id is fetched at most once.
type Resolver struct {
	students    StudentGetter
	subjects    SubjectGetter
	exams       ExamGetter
	logger      core.Logger
	Concurrency int
}

func NewResolver(students StudentGetter, subjects SubjectGetter, exams ExamGetter, logger core.Logger) *Resolver {
	return &Resolver{
		students:    students,
		subjects:    subjects,
		exams:       exams,
		logger:      logger,
		Concurrency: DefaultConcurrency,
	}
}

// ResolveExams attaches the subject name of every exam.
func (r *Resolver) ResolveExams(ctx context.Context, exams []exam.Exam) []ExamSummary {
	subjectIDs := make([]int, 0, len(exams))
	for _, e := range exams {
		subjectIDs = append(subjectIDs, e.SubjectID)
	}
	subjects := r.fetchSubjects(ctx, subjectIDs)

	summaries := make([]ExamSummary, 0, len(exams))
	for _, e := range exams {
		name := subject.UnknownLabel
		if s, ok := subjects[e.SubjectID]; ok {
			name = s.Label()
		}
		summaries = append(summaries, ExamSummary{
			Exam:         e,
			SubjectName:  name,
			DateLabel:    e.DateLabel(),
			Participants: len(e.Grades),
		})
	}
	return summaries
}

// ResolveGrades attaches the student name, and the subject name and date of the exam of every grade.
// Students and exams are fetched concurrently, then the subjects of the exams.
func (r *Resolver) ResolveGrades(ctx context.Context, grades []grade.Grade) []GradeSummary {
	studentIDs := make([]int, 0, len(grades))
	examIDs := make([]int, 0, len(grades))
	for _, g := range grades {
		studentIDs = append(studentIDs, g.StudentID)
		examIDs = append(examIDs, g.ExamID)
	}

	var (
		students map[int]student.Student
		exams    map[int]exam.Exam
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		students = r.fetchStudents(ctx, studentIDs)
	}()
	go func() {
		defer wg.Done()
		exams = r.fetchExams(ctx, examIDs)
	}()
	wg.Wait()

	subjectIDs := make([]int, 0, len(grades))
	for _, g := range grades {
		subjectIDs = append(subjectIDs, gradeSubjectID(g, exams))
	}
	subjects := r.fetchSubjects(ctx, subjectIDs)

	summaries := make([]GradeSummary, 0, len(grades))
	for _, g := range grades {
		sum := GradeSummary{
			Grade:       g,
			StudentName: student.UnknownLabel,
			SubjectName: subject.UnknownLabel,
			ExamDate:    exam.UnknownDate,
		}
		if s, ok := students[g.StudentID]; ok {
			sum.StudentName = s.FullName()
		}
		if e, ok := exams[g.ExamID]; ok {
			sum.ExamDate = e.DateLabel()
		}
		if s, ok := subjects[gradeSubjectID(g, exams)]; ok {
			sum.SubjectName = s.Label()
		}
		summaries = append(summaries, sum)
	}
	return summaries
}

func gradeSubjectID(g grade.Grade, exams map[int]exam.Exam) int {
	if e, ok := exams[g.ExamID]; ok && e.SubjectID != 0 {
		return e.SubjectID
	}
	return g.SubjectID
}

func (r *Resolver) fetchStudents(ctx context.Context, ids []int) map[int]student.Student {
	if r.students == nil {
		return nil
	}
	return fetchAll(ctx, ids, r.students.Get, r.Concurrency, r.logFailure("student"))
}

func (r *Resolver) fetchSubjects(ctx context.Context, ids []int) map[int]subject.Subject {
	if r.subjects == nil {
		return nil
	}
	return fetchAll(ctx, ids, r.subjects.Get, r.Concurrency, r.logFailure("subject"))
}

func (r *Resolver) fetchExams(ctx context.Context, ids []int) map[int]exam.Exam {
	if r.exams == nil {
		return nil
	}
	return fetchAll(ctx, ids, r.exams.Get, r.Concurrency, r.logFailure("exam"))
}

func (r *Resolver) logFailure(kind string) func(int, error) {
	return func(id int, err error) {
		if r.logger != nil {
			r.logger.Warn(fmt.Sprintf("failed to fetch %s %d", kind, id), err)
		}
	}
}

// fetchAll gets every distinct positive id, at most limit at a time.
// Failed ids are reported to onErr and missing from the result.
func fetchAll[T any](ctx context.Context, ids []int, get func(context.Context, int) (T, error), limit int, onErr func(int, error)) map[int]T {
	var mu sync.Mutex
	found := make(map[int]T, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, id := range uniqueIDs(ids) {
		id := id
		g.Go(func() error {
			v, err := get(gctx, id)
			if err != nil {
				onErr(id, err)
				return nil
			}
			mu.Lock()
			found[id] = v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return found
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Ints(unique)
	return unique
}
