package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

type (
	Options struct {
		Address        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		DefaultLimit   int
		Logger         core.Logger
		Translator     ut.Translator

		StudentSvc *student.Service
		SubjectSvc *subject.Service
		ExamSvc    *exam.Service
		GradeSvc   *grade.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewServer returns the development server of the school records API.
func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(requestIDMiddleware())
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.JSONSerializer = sonicSerializer{}
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	registerResource(s.app.Group("/eleves"), resourceApi[student.Student, student.NewStudent, student.UpdateStudent]{
		listFunc:     s.opts.StudentSvc.List,
		getFunc:      s.opts.StudentSvc.Get,
		createFunc:   s.opts.StudentSvc.Create,
		updateFunc:   s.opts.StudentSvc.Update,
		deleteFunc:   s.opts.StudentSvc.Delete,
		defaultLimit: s.opts.DefaultLimit,
	})
	registerResource(s.app.Group("/matieres"), resourceApi[subject.Subject, subject.NewSubject, subject.UpdateSubject]{
		listFunc:     s.opts.SubjectSvc.List,
		getFunc:      s.opts.SubjectSvc.Get,
		createFunc:   s.opts.SubjectSvc.Create,
		updateFunc:   s.opts.SubjectSvc.Update,
		deleteFunc:   s.opts.SubjectSvc.Delete,
		defaultLimit: s.opts.DefaultLimit,
	})
	registerResource(s.app.Group("/examens"), resourceApi[exam.Exam, exam.NewExam, exam.UpdateExam]{
		listFunc:     s.opts.ExamSvc.List,
		getFunc:      s.opts.ExamSvc.Get,
		createFunc:   s.opts.ExamSvc.Create,
		updateFunc:   s.opts.ExamSvc.Update,
		deleteFunc:   s.opts.ExamSvc.Delete,
		defaultLimit: s.opts.DefaultLimit,
	})
	registerResource(s.app.Group("/notes"), resourceApi[grade.Grade, grade.NewGrade, grade.UpdateGrade]{
		listFunc:     s.opts.GradeSvc.List,
		getFunc:      s.opts.GradeSvc.Get,
		createFunc:   s.opts.GradeSvc.Create,
		updateFunc:   s.opts.GradeSvc.Update,
		deleteFunc:   s.opts.GradeSvc.Delete,
		defaultLimit: s.opts.DefaultLimit,
	})
}

// Start listens on the configured address until Stop is called.
func (s *server) Start() error {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Bienvenue sur l'API Carnet !")
}
