package main

import (
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/screen"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
	logsvc "github.com/trezcool/carnet/services/logger"
	"github.com/trezcool/carnet/storage/restapi"
)

func newLogger(conf *core.Config) (core.Logger, *logsvc.RollbarLogger) {
	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger("CLI"), conf)
	return logger, logger
}

func newTranslator(conf *core.Config) ut.Translator {
	return core.NewTranslator(conf.Locale)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := core.NewValidator(translator)
	grade.InitValidators(validate, translator)
	return validate
}

func newServices(client *restapi.Client, validate *validator.Validate) screen.Services {
	return screen.Services{
		Students: student.NewService(client.Students(), validate),
		Subjects: subject.NewService(client.Subjects(), validate),
		Exams:    exam.NewService(client.Exams(), validate),
		Grades:   grade.NewService(client.Grades(), validate),
	}
}

func newResolver(svcs screen.Services, logger core.Logger) *assoc.Resolver {
	return assoc.NewResolver(svcs.Students, svcs.Subjects, svcs.Exams, logger)
}

func newDeps(conf *core.Config, translator ut.Translator, logger core.Logger) screen.Deps {
	return screen.Deps{
		Navigator:  consoleNavigator{},
		Translator: translator,
		Logger:     logger,
		Page:       core.Page{Limit: conf.API.DefaultLimit}.Clean(),
	}
}

// newContainer returns the dependency injection container of the CLI.
func newContainer() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(func(conf *core.Config, logger core.Logger) (*restapi.Client, error) {
		return restapi.NewClient(conf, logger)
	}))
	must(c.Provide(newServices))
	must(c.Provide(newResolver))
	must(c.Provide(newDeps))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
