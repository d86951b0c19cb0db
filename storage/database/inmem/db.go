// Package inmemdb is an in-memory store of the school records, safe for concurrent use.
// Deletes cascade like the relational schema: subject → exams → grades, exam → grades, student → grades.
package inmemdb

import (
	"sort"
	"sync"
	"time"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

var nowFunc = func() time.Time { return time.Now().UTC() } // mockable

type DB struct {
	mutex sync.RWMutex

	students map[int]student.Student
	subjects map[int]subject.Subject
	exams    map[int]exam.Exam
	grades   map[int]grade.Grade

	pkCount struct {
		student, subject, exam, grade int
	}
}

func NewDB() *DB {
	return &DB{
		students: make(map[int]student.Student),
		subjects: make(map[int]subject.Subject),
		exams:    make(map[int]exam.Exam),
		grades:   make(map[int]grade.Grade),
	}
}

// Reset drops every record.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.students = make(map[int]student.Student)
	db.subjects = make(map[int]subject.Subject)
	db.exams = make(map[int]exam.Exam)
	db.grades = make(map[int]grade.Grade)
	db.pkCount.student, db.pkCount.subject, db.pkCount.exam, db.pkCount.grade = 0, 0, 0, 0
}

// must be called with the lock held
func (db *DB) deleteExam(id int) {
	delete(db.exams, id)
	for gid, g := range db.grades {
		if g.ExamID == id {
			delete(db.grades, gid)
		}
	}
}

// must be called with the lock held
func (db *DB) withRelations(e exam.Exam) exam.Exam {
	if sub, ok := db.subjects[e.SubjectID]; ok {
		e.Subject = &sub
	} else {
		e.Subject = nil
	}
	e.Grades = nil
	for _, g := range db.grades {
		if g.ExamID == e.ID {
			e.Grades = append(e.Grades, g)
		}
	}
	sortByID(e.Grades, func(g grade.Grade) int { return g.ID })
	return e
}

// values returns the records of table sorted by id, windowed by page.
func values[T any](table map[int]T, page core.Page, id func(T) int) []T {
	all := make([]T, 0, len(table))
	for _, v := range table {
		all = append(all, v)
	}
	sortByID(all, id)
	start, end := page.Window(len(all))
	return all[start:end]
}

func sortByID[T any](items []T, id func(T) int) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
