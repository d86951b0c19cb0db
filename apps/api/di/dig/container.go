package dig_container

import (
	"context"
	"fmt"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/carnet/apps/api/echo"
	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
	logsvc "github.com/trezcool/carnet/services/logger"
	"github.com/trezcool/carnet/storage/database"
	inmemdb "github.com/trezcool/carnet/storage/database/inmem"
	sqlxrepos "github.com/trezcool/carnet/storage/database/sqlx"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Repositories are the stores of the API: PostgreSQL when database.url is set, in memory otherwise.
	Repositories struct {
		dig.Out
		Students student.Repository
		Subjects subject.Repository
		Exams    exam.Repository
		Grades   grade.Repository
		DB       *sqlx.DB // nil in memory
	}

	servicesParam struct {
		dig.In
		Conf       *core.Config
		Logger     core.Logger
		Translator ut.Translator
		StudentSvc *student.Service
		SubjectSvc *subject.Service
		ExamSvc    *exam.Service
		GradeSvc   *grade.Service
	}
)

func newLogger(conf *core.Config) (core.Logger, *logsvc.RollbarLogger) {
	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger("API"), conf)
	return logger, logger
}

func newDBLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(logsvc.NewStdLogger("DB"), conf)
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) Repositories {
	if conf.Database.URL == "" {
		loggerParam.Logger.Info("database.url not set: using the in-memory store")
		db := inmemdb.NewDB()
		return Repositories{
			Students: inmemdb.NewStudentRepository(db),
			Subjects: inmemdb.NewSubjectRepository(db),
			Exams:    inmemdb.NewExamRepository(db),
			Grades:   inmemdb.NewGradeRepository(db),
		}
	}

	setUp := func() (*sqlx.DB, error) {
		db, err := database.Open(context.Background(), conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return Repositories{
		Students: sqlxrepos.NewStudentRepository(db),
		Subjects: sqlxrepos.NewSubjectRepository(db),
		Exams:    sqlxrepos.NewExamRepository(db),
		Grades:   sqlxrepos.NewGradeRepository(db),
		DB:       db,
	}
}

func newTranslator(conf *core.Config) ut.Translator {
	return core.NewTranslator(conf.Locale)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := core.NewValidator(translator)
	grade.InitValidators(validate, translator)
	return validate
}

func newServer(p servicesParam) echoapi.Server {
	return echoapi.NewServer(&echoapi.Options{
		Address:      p.Conf.Server.Address,
		Debug:        p.Conf.Debug,
		TestMode:     p.Conf.TestMode,
		DefaultLimit: p.Conf.API.DefaultLimit,
		Logger:       p.Logger,
		Translator:   p.Translator,
		StudentSvc:   p.StudentSvc,
		SubjectSvc:   p.SubjectSvc,
		ExamSvc:      p.ExamSvc,
		GradeSvc:     p.GradeSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(student.NewService))
	must(c.Provide(subject.NewService))
	must(c.Provide(exam.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
