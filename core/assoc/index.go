// Package assoc cross-references independently fetched lists by foreign key
// to decorate records with the names and counts of related records.
//
// Every record gets a display label: a reference that cannot be resolved yields a
// placeholder (eg: subject.UnknownLabel) and never drops the record.
package assoc

import (
	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

type (
	ExamSummary struct {
		Exam         exam.Exam
		SubjectName  string
		DateLabel    string
		Participants int
	}

	SubjectSummary struct {
		Subject    subject.Subject
		ExamCount  int
		GradeCount int
	}

	GradeSummary struct {
		Grade       grade.Grade
		StudentName string
		SubjectName string
		ExamDate    string
	}
)

// Index holds the lookup tables of one fetch cycle. It is built in one linear pass per list.
type Index struct {
	students map[int]student.Student
	subjects map[int]subject.Subject
	exams    map[int]exam.Exam

	gradesByExam    map[int][]grade.Grade
	gradesBySubject map[int][]grade.Grade
	examsBySubject  map[int][]exam.Exam

	hasGrades bool
}

// NewIndex builds the lookup tables. Any list may be nil when a screen does not need it.
func NewIndex(students []student.Student, subjects []subject.Subject, exams []exam.Exam, grades []grade.Grade) *Index {
	ix := &Index{
		students:        make(map[int]student.Student, len(students)),
		subjects:        make(map[int]subject.Subject, len(subjects)),
		exams:           make(map[int]exam.Exam, len(exams)),
		gradesByExam:    make(map[int][]grade.Grade),
		gradesBySubject: make(map[int][]grade.Grade),
		examsBySubject:  make(map[int][]exam.Exam),
		hasGrades:       grades != nil,
	}
	for _, s := range students {
		ix.students[s.ID] = s
	}
	for _, s := range subjects {
		ix.subjects[s.ID] = s
	}
	for _, e := range exams {
		ix.exams[e.ID] = e
		ix.examsBySubject[e.SubjectID] = append(ix.examsBySubject[e.SubjectID], e)
	}
	for _, g := range grades {
		ix.gradesByExam[g.ExamID] = append(ix.gradesByExam[g.ExamID], g)
		ix.gradesBySubject[g.SubjectID] = append(ix.gradesBySubject[g.SubjectID], g)
	}
	return ix
}

// SubjectName resolves the name of subject id.
func (ix *Index) SubjectName(id int) string {
	if s, ok := ix.subjects[id]; ok {
		return s.Label()
	}
	return subject.UnknownLabel
}

// StudentName resolves the full name of student id.
func (ix *Index) StudentName(id int) string {
	if s, ok := ix.students[id]; ok {
		return s.FullName()
	}
	return student.UnknownLabel
}

// ExamsOfSubject returns the exams referencing subject id.
func (ix *Index) ExamsOfSubject(id int) []exam.Exam { return ix.examsBySubject[id] }

func (ix *Index) ExamSummaries(exams []exam.Exam) []ExamSummary {
	summaries := make([]ExamSummary, 0, len(exams))
	for _, e := range exams {
		name := ix.SubjectName(e.SubjectID)
		if name == subject.UnknownLabel && e.Subject != nil {
			name = e.Subject.Label()
		}
		participants := len(ix.gradesByExam[e.ID])
		if !ix.hasGrades {
			participants = len(e.Grades)
		}
		summaries = append(summaries, ExamSummary{
			Exam:         e,
			SubjectName:  name,
			DateLabel:    e.DateLabel(),
			Participants: participants,
		})
	}
	return summaries
}

func (ix *Index) SubjectSummaries(subjects []subject.Subject) []SubjectSummary {
	summaries := make([]SubjectSummary, 0, len(subjects))
	for _, s := range subjects {
		summaries = append(summaries, SubjectSummary{
			Subject:    s,
			ExamCount:  len(ix.examsBySubject[s.ID]),
			GradeCount: len(ix.gradesBySubject[s.ID]),
		})
	}
	return summaries
}

func (ix *Index) GradeSummaries(grades []grade.Grade) []GradeSummary {
	summaries := make([]GradeSummary, 0, len(grades))
	for _, g := range grades {
		sum := GradeSummary{
			Grade:       g,
			StudentName: ix.StudentName(g.StudentID),
			SubjectName: subject.UnknownLabel,
			ExamDate:    exam.UnknownDate,
		}
		subjectID := g.SubjectID
		if e, ok := ix.exams[g.ExamID]; ok {
			sum.ExamDate = e.DateLabel()
			if e.SubjectID != 0 {
				subjectID = e.SubjectID
			}
		}
		sum.SubjectName = ix.SubjectName(subjectID)
		summaries = append(summaries, sum)
	}
	return summaries
}

// FilterGrades does a case-insensitive match of query on the student or subject names.
func FilterGrades(summaries []GradeSummary, query string) []GradeSummary {
	query = core.CleanString(query)
	if query == "" {
		return summaries
	}
	filtered := make([]GradeSummary, 0, len(summaries))
	for _, s := range summaries {
		if core.ContainsFold(s.StudentName, query) || core.ContainsFold(s.SubjectName, query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterExams does a case-insensitive match of query on the subject names.
func FilterExams(summaries []ExamSummary, query string) []ExamSummary {
	query = core.CleanString(query)
	if query == "" {
		return summaries
	}
	filtered := make([]ExamSummary, 0, len(summaries))
	for _, s := range summaries {
		if core.ContainsFold(s.SubjectName, query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
