package main

import (
	"fmt"

	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/screen"
	exportsvc "github.com/trezcool/carnet/services/export"
)

func (cli *commandLine) exams(action string, args []string) error {
	switch action {
	case "list", "export":
		fs := cli.newFlagSet("exams " + action)
		search := fs.String("search", "", "Search on the subject name.")
		page := addPageFlags(fs)
		var file *string
		if action == "export" {
			file = fs.String("file", "", "The workbook to write.")
		}
		if err := parse(fs, args); err != nil {
			return err
		}
		list := screen.NewExamList(cli.svcs, cli.withPage(page))
		if state := list.Load(cli.ctx); state.Status == remote.Failure {
			return loadFailed(cli, state)
		}
		list.SetFilter(*search)
		rows := list.Rows()

		if file != nil {
			f, err := cli.createFile(*file)
			if err != nil {
				return err
			}
			defer f.Close()
			return exportsvc.WriteExams(f, rows)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cli.out, "Aucun examen trouvé.")
			return nil
		}
		w := newTable(cli.out, "ID", "MATIÈRE", "DATE", "PARTICIPANTS")
		for _, r := range rows {
			printRow(w, itoa(r.Exam.ID), r.SubjectName, r.DateLabel, itoa(r.Participants))
		}
		return w.Flush()

	case "show":
		fs := cli.newFlagSet("exams show")
		id := idFlag(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.showExam(*id)

	case "create":
		fs := cli.newFlagSet("exams create")
		subjectID := fs.Int("matiere", 0, "The subject ID.")
		date := fs.String("date", "", "The exam date (YYYY-MM-DD).")
		if err := parse(fs, args); err != nil {
			return err
		}
		form := screen.NewExamForm(cli.svcs, cli.deps)
		e, err := form.Submit(cli.ctx, exam.NewExam{SubjectID: *subjectID, Date: *date})
		if err != nil {
			return cli.submitFailed(form.FieldErrors(), err)
		}
		fmt.Fprintf(cli.out, "#%d %s\n", e.ID, e.DateLabel())
		return nil

	case "update":
		fs := cli.newFlagSet("exams update")
		id := idFlag(fs)
		subjectID := fs.Int("matiere", 0, "The subject ID.")
		date := fs.String("date", "", "The exam date (YYYY-MM-DD).")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		var ue exam.UpdateExam
		set := visited(fs)
		if set["matiere"] {
			ue.SubjectID = subjectID
		}
		if set["date"] {
			ue.Date = date
		}
		detail := screen.NewExamDetail(cli.svcs, *id, cli.deps)
		if state := detail.Load(cli.ctx); state.Status == remote.Failure {
			return state.Err
		}
		if err := detail.Edit(); err != nil {
			return err
		}
		if err := detail.Submit(cli.ctx, ue); err != nil {
			return cli.submitFailed(detail.FieldErrors(), err)
		}
		e := detail.State().Data
		fmt.Fprintf(cli.out, "#%d %s\n", e.ID, e.DateLabel())
		return nil

	case "delete":
		fs := cli.newFlagSet("exams delete")
		id := idFlag(fs)
		yes := fs.Bool("yes", false, "Do not ask for confirmation. Grades of the exam are deleted too.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.deleted(screen.NewExamDetail(cli.svcs, *id, cli.withConfirm(*yes)).Delete(cli.ctx))

	default:
		cli.printUsage()
		return errHelp
	}
}

// showExam prints an exam with its grades. Related records are fetched one by one;
// those that cannot be fetched are shown with a placeholder.
func (cli *commandLine) showExam(id int) error {
	detail := screen.NewExamDetail(cli.svcs, id, cli.deps)
	state := detail.Load(cli.ctx)
	if state.Status == remote.Failure {
		return state.Err
	}
	e := state.Data
	summary := cli.resolver.ResolveExams(cli.ctx, []exam.Exam{e})[0]
	fmt.Fprintf(cli.out, "Examen #%d\n", e.ID)
	fmt.Fprintf(cli.out, "  Matière : %s\n", summary.SubjectName)
	fmt.Fprintf(cli.out, "  Date : %s\n", summary.DateLabel)
	fmt.Fprintf(cli.out, "  Participants : %d\n", summary.Participants)

	if len(e.Grades) == 0 {
		return nil
	}
	w := newTable(cli.out, "ID", "ÉLÈVE", "NOTE")
	for _, g := range cli.resolver.ResolveGrades(cli.ctx, e.Grades) {
		printRow(w, itoa(g.Grade.ID), g.StudentName, grade.FormatValue(g.Grade.Value))
	}
	return w.Flush()
}
