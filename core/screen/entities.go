package screen

import (
	"context"

	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

// Services are the entity services the screens talk to.
type Services struct {
	Students *student.Service
	Subjects *subject.Service
	Exams    *exam.Service
	Grades   *grade.Service
}

// Students

// NewStudentList returns the students screen; its filter is a class level ("All"/"Tous" shows everyone).
func NewStudentList(svcs Services, deps Deps) *List[[]student.Student, student.Student] {
	res := remote.NewList(svcs.Students.List, deps.Page,
		remote.WithErrorMessage[[]student.Student](StudentMessages.LoadFailed),
		remote.WithLogger[[]student.Student](deps.Logger),
	)
	return NewList(res, student.FilterByClass)
}

func NewStudentDetail(svcs Services, id int, deps Deps) *Detail[student.Student, student.UpdateStudent] {
	return NewDetail(id, svcs.Students.Get, svcs.Students.Update, svcs.Students.Delete, StudentMessages, deps)
}

func NewStudentForm(svcs Services, deps Deps) *Create[student.NewStudent, student.Student] {
	return NewCreate(svcs.Students.Create, StudentMessages, deps)
}

// Subjects

// NewSubjectList returns the subjects screen, with the exam and grade counts of every subject.
// Its filter is a case-insensitive search on the subject name.
func NewSubjectList(svcs Services, deps Deps) *List[assoc.Lists, assoc.SubjectSummary] {
	src := assoc.Sources{Primary: assoc.KindSubjects, Subjects: svcs.Subjects, Exams: svcs.Exams, Grades: svcs.Grades}
	res := listsResource(src, SubjectMessages, deps)
	return NewList(res, func(lists assoc.Lists, query string) []assoc.SubjectSummary {
		return lists.Index().SubjectSummaries(subject.Search(lists.Subjects, query))
	})
}

func NewSubjectDetail(svcs Services, id int, deps Deps) *Detail[subject.Subject, subject.UpdateSubject] {
	return NewDetail(id, svcs.Subjects.Get, svcs.Subjects.Update, svcs.Subjects.Delete, SubjectMessages, deps)
}

func NewSubjectForm(svcs Services, deps Deps) *Create[subject.NewSubject, subject.Subject] {
	return NewCreate(svcs.Subjects.Create, SubjectMessages, deps)
}

// Exams

// NewExamList returns the exams screen, with the subject name, date and participant count of every exam.
// Its filter is a case-insensitive search on the subject name or date.
func NewExamList(svcs Services, deps Deps) *List[assoc.Lists, assoc.ExamSummary] {
	src := assoc.Sources{Primary: assoc.KindExams, Subjects: svcs.Subjects, Exams: svcs.Exams, Grades: svcs.Grades}
	res := listsResource(src, ExamMessages, deps)
	return NewList(res, func(lists assoc.Lists, query string) []assoc.ExamSummary {
		return assoc.FilterExams(lists.Index().ExamSummaries(lists.Exams), query)
	})
}

func NewExamDetail(svcs Services, id int, deps Deps) *Detail[exam.Exam, exam.UpdateExam] {
	return NewDetail(id, svcs.Exams.Get, svcs.Exams.Update, svcs.Exams.Delete, ExamMessages, deps)
}

func NewExamForm(svcs Services, deps Deps) *Create[exam.NewExam, exam.Exam] {
	return NewCreate(svcs.Exams.Create, ExamMessages, deps)
}

// Grades

// NewGradeList returns the grades screen, with the student name, subject name and exam date of every grade.
// Its filter is a case-insensitive search on the student or subject name.
func NewGradeList(svcs Services, deps Deps) *List[assoc.Lists, assoc.GradeSummary] {
	src := assoc.Sources{Primary: assoc.KindGrades, Students: svcs.Students, Subjects: svcs.Subjects, Exams: svcs.Exams, Grades: svcs.Grades}
	res := listsResource(src, GradeMessages, deps)
	return NewList(res, func(lists assoc.Lists, query string) []assoc.GradeSummary {
		return assoc.FilterGrades(lists.Index().GradeSummaries(lists.Grades), query)
	})
}

func NewGradeDetail(svcs Services, id int, deps Deps) *Detail[grade.Grade, grade.UpdateGrade] {
	return NewDetail(id, svcs.Grades.Get, svcs.Grades.Update, svcs.Grades.Delete, GradeMessages, deps)
}

func NewGradeForm(svcs Services, deps Deps) *Create[grade.NewGrade, grade.Grade] {
	return NewCreate(svcs.Grades.Create, GradeMessages, deps)
}

func listsResource(src assoc.Sources, msgs Messages, deps Deps) *remote.Resource[assoc.Lists] {
	return remote.New(
		func(ctx context.Context) (assoc.Lists, error) { return assoc.FetchLists(ctx, src, deps.Page) },
		remote.WithErrorMessage[assoc.Lists](msgs.LoadFailed),
		remote.WithLogger[assoc.Lists](deps.Logger),
	)
}
