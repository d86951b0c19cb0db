package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/screen"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	ctx      context.Context
	conf     *core.Config
	svcs     screen.Services
	resolver *assoc.Resolver
	deps     screen.Deps
	in       io.Reader
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  students list [-class LEVEL] [-search TEXT] [-skip N] [-limit N] - list students")
	fmt.Fprintln(cli.out, "  students show -id ID                                   - show a student")
	fmt.Fprintln(cli.out, "  students create -nom NOM -prenom PRENOM -classe LEVEL  - create a student")
	fmt.Fprintln(cli.out, "  students update -id ID [-nom NOM] [-prenom PRENOM] [-classe LEVEL]")
	fmt.Fprintln(cli.out, "  students delete -id ID [-yes]                          - delete a student")
	fmt.Fprintln(cli.out, "  students import -file FILE.xlsx                        - create students from a workbook")
	fmt.Fprintln(cli.out, "  students export -file FILE.xlsx [-class LEVEL]         - write students to a workbook")
	fmt.Fprintln(cli.out, "  subjects list|show|create|update|delete                - manage subjects (-nom NAME)")
	fmt.Fprintln(cli.out, "  exams list|show|create|update|delete|export            - manage exams (-matiere ID -date YYYY-MM-DD)")
	fmt.Fprintln(cli.out, "  grades list|show|create|update|delete|export           - manage grades (-eleve ID -examen ID -matiere ID -valeur N)")
	fmt.Fprintln(cli.out, "  migrate up|down|status|version|reset|redo [ARGS]       - migrate the API database (database.url)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 3 {
		cli.printUsage()
		return errHelp
	}

	action, actionArgs := args[2], args[3:]
	switch args[1] {
	case "students", "eleves":
		return cli.students(action, actionArgs)
	case "subjects", "matieres":
		return cli.subjects(action, actionArgs)
	case "exams", "examens":
		return cli.exams(action, actionArgs)
	case "grades", "notes":
		return cli.grades(action, actionArgs)
	case "migrate":
		return cli.migrate(action, actionArgs)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// idFlag registers the required -id flag.
func idFlag(fs *flag.FlagSet) *int {
	return fs.Int("id", 0, "The record ID.")
}

func requireID(fs *flag.FlagSet, id int) error {
	if id < 1 {
		fs.Usage()
		return errHelp
	}
	return nil
}

type pageFlags struct {
	skip, limit *int
}

func addPageFlags(fs *flag.FlagSet) pageFlags {
	return pageFlags{
		skip:  fs.Int("skip", 0, "Number of records to skip."),
		limit: fs.Int("limit", 0, "Maximum number of records (default: api.defaultLimit)."),
	}
}

// withPage returns the screen dependencies using the page of the flags.
func (cli *commandLine) withPage(p pageFlags) screen.Deps {
	deps := cli.deps
	deps.Page = core.Page{Skip: *p.skip, Limit: *p.limit}
	if deps.Page.Limit == 0 {
		deps.Page.Limit = cli.deps.Page.Limit
	}
	return deps
}

// withConfirm returns the screen dependencies asking confirmations on the console.
func (cli *commandLine) withConfirm(assumeYes bool) screen.Deps {
	deps := cli.deps
	deps.Alerter = &consoleAlerter{in: cli.in, out: cli.out, assumeYes: assumeYes}
	return deps
}

// loadFailed reports a failed fetch cycle.
func loadFailed[T any](cli *commandLine, state remote.State[T]) error {
	fmt.Fprintln(cli.out, state.Message)
	return state.Err
}

// submitFailed prints the field errors of a rejected form.
func (cli *commandLine) submitFailed(fldErrs map[string]string, err error) error {
	if len(fldErrs) == 0 {
		fldErrs = core.FieldMessages(err, cli.deps.Translator)
	}
	printFieldErrors(cli.out, fldErrs)
	return err
}

func (cli *commandLine) deleted(ok bool, err error) error {
	if err == nil && !ok {
		fmt.Fprintln(cli.out, "Suppression annulée.")
	}
	return err
}

func (cli *commandLine) createFile(path string) (*os.File, error) {
	if path == "" {
		return nil, core.NewArgumentError("-file is required")
	}
	return os.Create(path)
}

func itoa(i int) string { return strconv.Itoa(i) }
