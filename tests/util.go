package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
	"github.com/trezcool/carnet/storage/database/inmem"
)

type (
	Repos struct {
		Students student.Repository
		Subjects subject.Repository
		Exams    exam.Repository
		Grades   grade.Repository
	}

	Services struct {
		Students *student.Service
		Subjects *subject.Service
		Exams    *exam.Service
		Grades   *grade.Service
	}
)

// NewValidator returns a validator with every custom validation registered, and its translator.
func NewValidator(locale ...string) (*validator.Validate, ut.Translator) {
	loc := core.LocaleFR
	if len(locale) > 0 {
		loc = locale[0]
	}
	translator := core.NewTranslator(loc)
	validate := core.NewValidator(translator)
	grade.InitValidators(validate, translator)
	return validate, translator
}

// NewInmemRepos returns the repositories of a fresh in-memory store.
func NewInmemRepos() (*inmemdb.DB, Repos) {
	db := inmemdb.NewDB()
	return db, Repos{
		Students: inmemdb.NewStudentRepository(db),
		Subjects: inmemdb.NewSubjectRepository(db),
		Exams:    inmemdb.NewExamRepository(db),
		Grades:   inmemdb.NewGradeRepository(db),
	}
}

func NewServices(repos Repos, validate *validator.Validate) Services {
	return Services{
		Students: student.NewService(repos.Students, validate),
		Subjects: subject.NewService(repos.Subjects, validate),
		Exams:    exam.NewService(repos.Exams, validate),
		Grades:   grade.NewService(repos.Grades, validate),
	}
}

func CreateStudent(t *testing.T, repo student.Repository, lastName, firstName, class string) student.Student {
	s, err := repo.Create(context.Background(), student.NewStudent{LastName: lastName, FirstName: firstName, Class: class})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateSubject(t *testing.T, repo subject.Repository, name string) subject.Subject {
	s, err := repo.Create(context.Background(), subject.NewSubject{Name: name})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return s
}

func CreateExam(t *testing.T, repo exam.Repository, subjectID int, date string) exam.Exam {
	e, err := repo.Create(context.Background(), exam.NewExam{SubjectID: subjectID, Date: date})
	if err != nil {
		t.Fatalf("CreateExam() failed: %v", err)
	}
	return e
}

func CreateGrade(t *testing.T, repo grade.Repository, studentID, examID, subjectID int, value float64) grade.Grade {
	g, err := repo.Create(context.Background(), grade.NewGrade{StudentID: studentID, ExamID: examID, SubjectID: subjectID, Value: value})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return g
}

// School is a small data set: 3 students, 2 subjects, 3 exams and 4 grades.
type School struct {
	Awa, Jean, Marie student.Student
	Maths, Physique  subject.Subject

	Algebre, Analyse exam.Exam // maths
	Mecanique        exam.Exam // physique

	AwaAlgebre   grade.Grade
	JeanAlgebre  grade.Grade
	AwaMecanique grade.Grade
	MarieAnalyse grade.Grade
}

func SeedSchool(t *testing.T, repos Repos) School {
	var sc School
	sc.Awa = CreateStudent(t, repos.Students, "Diallo", "Awa", student.LevelL1)
	sc.Jean = CreateStudent(t, repos.Students, "Dupont", "Jean", student.LevelL1)
	sc.Marie = CreateStudent(t, repos.Students, "Curie", "Marie", student.LevelM2)

	sc.Maths = CreateSubject(t, repos.Subjects, "Mathématiques")
	sc.Physique = CreateSubject(t, repos.Subjects, "Physique")

	sc.Algebre = CreateExam(t, repos.Exams, sc.Maths.ID, "2024-01-15")
	sc.Analyse = CreateExam(t, repos.Exams, sc.Maths.ID, "2024-02-20")
	sc.Mecanique = CreateExam(t, repos.Exams, sc.Physique.ID, "2024-03-05")

	sc.AwaAlgebre = CreateGrade(t, repos.Grades, sc.Awa.ID, sc.Algebre.ID, sc.Maths.ID, 15.5)
	sc.JeanAlgebre = CreateGrade(t, repos.Grades, sc.Jean.ID, sc.Algebre.ID, sc.Maths.ID, 9)
	sc.AwaMecanique = CreateGrade(t, repos.Grades, sc.Awa.ID, sc.Mecanique.ID, sc.Physique.ID, 12)
	sc.MarieAnalyse = CreateGrade(t, repos.Grades, sc.Marie.ID, sc.Analyse.ID, sc.Maths.ID, 18)
	return sc
}

// Alert is one message shown by an Alerter.
type Alert struct {
	Title   string
	Message string
}

// Alerter records alerts and answers confirmations with Answer.
type Alerter struct {
	Answer bool

	mu       sync.Mutex
	alerts   []Alert
	confirms []Alert
}

func (a *Alerter) Alert(title, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, Alert{title, message})
}

func (a *Alerter) Confirm(title, message string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.confirms = append(a.confirms, Alert{title, message})
	return a.Answer
}

func (a *Alerter) Alerts() []Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Alert(nil), a.alerts...)
}

func (a *Alerter) Confirms() []Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Alert(nil), a.confirms...)
}

// Navigator counts the navigations back.
type Navigator struct {
	mu    sync.Mutex
	backs int
}

func (n *Navigator) Back() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backs++
}

func (n *Navigator) Backs() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.backs
}

// Logger records the logged messages by level.
type Logger struct {
	mu   sync.Mutex
	logs map[string][]string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logs == nil {
		l.logs = make(map[string][]string)
	}
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
	}
	l.logs[level] = append(l.logs[level], msg)
}

func (l *Logger) Logs(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.logs[level]...)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }
