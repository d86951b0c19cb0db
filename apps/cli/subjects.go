package main

import (
	"fmt"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/screen"
	"github.com/trezcool/carnet/core/subject"
)

func (cli *commandLine) subjects(action string, args []string) error {
	switch action {
	case "list":
		fs := cli.newFlagSet("subjects list")
		search := fs.String("search", "", "Search on the subject name.")
		page := addPageFlags(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		list := screen.NewSubjectList(cli.svcs, cli.withPage(page))
		if state := list.Load(cli.ctx); state.Status == remote.Failure {
			return loadFailed(cli, state)
		}
		list.SetFilter(*search)
		rows := list.Rows()
		if len(rows) == 0 {
			fmt.Fprintln(cli.out, "Aucune matière trouvée.")
			return nil
		}
		w := newTable(cli.out, "ID", "NOM", "EXAMENS", "NOTES")
		for _, r := range rows {
			printRow(w, itoa(r.Subject.ID), r.Subject.Label(), itoa(r.ExamCount), itoa(r.GradeCount))
		}
		return w.Flush()

	case "show":
		fs := cli.newFlagSet("subjects show")
		id := idFlag(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.showSubject(*id)

	case "create":
		fs := cli.newFlagSet("subjects create")
		name := fs.String("nom", "", "The subject name.")
		if err := parse(fs, args); err != nil {
			return err
		}
		form := screen.NewSubjectForm(cli.svcs, cli.deps)
		s, err := form.Submit(cli.ctx, subject.NewSubject{Name: *name})
		if err != nil {
			return cli.submitFailed(form.FieldErrors(), err)
		}
		fmt.Fprintf(cli.out, "#%d %s\n", s.ID, s.Label())
		return nil

	case "update":
		fs := cli.newFlagSet("subjects update")
		id := idFlag(fs)
		name := fs.String("nom", "", "The subject name.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		var us subject.UpdateSubject
		if visited(fs)["nom"] {
			us.Name = name
		}
		detail := screen.NewSubjectDetail(cli.svcs, *id, cli.deps)
		if state := detail.Load(cli.ctx); state.Status == remote.Failure {
			return state.Err
		}
		if err := detail.Edit(); err != nil {
			return err
		}
		if err := detail.Submit(cli.ctx, us); err != nil {
			return cli.submitFailed(detail.FieldErrors(), err)
		}
		s := detail.State().Data
		fmt.Fprintf(cli.out, "#%d %s\n", s.ID, s.Label())
		return nil

	case "delete":
		fs := cli.newFlagSet("subjects delete")
		id := idFlag(fs)
		yes := fs.Bool("yes", false, "Do not ask for confirmation. Exams and grades of the subject are deleted too.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.deleted(screen.NewSubjectDetail(cli.svcs, *id, cli.withConfirm(*yes)).Delete(cli.ctx))

	default:
		cli.printUsage()
		return errHelp
	}
}

// showSubject prints a subject with its exams.
func (cli *commandLine) showSubject(id int) error {
	detail := screen.NewSubjectDetail(cli.svcs, id, cli.deps)
	state := detail.Load(cli.ctx)
	if state.Status == remote.Failure {
		return state.Err
	}
	s := state.Data
	fmt.Fprintf(cli.out, "Matière #%d : %s\n", s.ID, s.Label())

	lists, err := assoc.FetchLists(cli.ctx, assoc.Sources{Exams: cli.svcs.Exams, Grades: cli.svcs.Grades}, core.Page{})
	if err != nil {
		fmt.Fprintln(cli.out, screen.ExamMessages.LoadFailed)
		return err
	}
	ix := assoc.NewIndex(nil, []subject.Subject{s}, lists.Exams, lists.Grades)
	exams := ix.ExamSummaries(ix.ExamsOfSubject(s.ID))
	if len(exams) == 0 {
		fmt.Fprintln(cli.out, "Aucun examen.")
		return nil
	}
	w := newTable(cli.out, "ID", "DATE", "PARTICIPANTS")
	for _, e := range exams {
		printRow(w, itoa(e.Exam.ID), e.DateLabel, itoa(e.Participants))
	}
	return w.Flush()
}
