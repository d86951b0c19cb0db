package main

import (
	"flag"
	"fmt"

	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/screen"
	exportsvc "github.com/trezcool/carnet/services/export"
)

type gradeFlags struct {
	student, exam, subject, value *string
}

func (cli *commandLine) addGradeFlags(fsName string) (gradeFlags, *flag.FlagSet) {
	fs := cli.newFlagSet(fsName)
	return gradeFlags{
		student: fs.String("eleve", "", "The student ID."),
		exam:    fs.String("examen", "", "The exam ID."),
		subject: fs.String("matiere", "", "The subject ID."),
		value:   fs.String("valeur", "", "The grade, between 0 and 20 (12.5 or 12,5)."),
	}, fs
}

func (f gradeFlags) form() grade.Form {
	return grade.Form{StudentID: *f.student, ExamID: *f.exam, SubjectID: *f.subject, Value: *f.value}
}

func (cli *commandLine) grades(action string, args []string) error {
	switch action {
	case "list", "export":
		fs := cli.newFlagSet("grades " + action)
		search := fs.String("search", "", "Search on the student or subject name.")
		page := addPageFlags(fs)
		var file *string
		if action == "export" {
			file = fs.String("file", "", "The workbook to write.")
		}
		if err := parse(fs, args); err != nil {
			return err
		}
		list := screen.NewGradeList(cli.svcs, cli.withPage(page))
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
			return exportsvc.WriteGrades(f, rows)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cli.out, "Aucune note trouvée.")
			return nil
		}
		w := newTable(cli.out, "ID", "ÉLÈVE", "MATIÈRE", "DATE", "NOTE")
		for _, r := range rows {
			printRow(w, itoa(r.Grade.ID), r.StudentName, r.SubjectName, r.ExamDate, grade.FormatValue(r.Grade.Value))
		}
		return w.Flush()

	case "show":
		fs := cli.newFlagSet("grades show")
		id := idFlag(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.showGrade(*id)

	case "create":
		flags, fs := cli.addGradeFlags("grades create")
		if err := parse(fs, args); err != nil {
			return err
		}
		ng, err := flags.form().Parse(cli.deps.Translator)
		if err != nil {
			return cli.submitFailed(nil, err)
		}
		form := screen.NewGradeForm(cli.svcs, cli.deps)
		g, err := form.Submit(cli.ctx, ng)
		if err != nil {
			return cli.submitFailed(form.FieldErrors(), err)
		}
		fmt.Fprintf(cli.out, "#%d %s/20\n", g.ID, grade.FormatValue(g.Value))
		return nil

	case "update":
		flags, fs := cli.addGradeFlags("grades update")
		id := idFlag(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		ug, err := flags.form().ParseUpdate(cli.deps.Translator)
		if err != nil {
			return cli.submitFailed(nil, err)
		}
		detail := screen.NewGradeDetail(cli.svcs, *id, cli.deps)
		if state := detail.Load(cli.ctx); state.Status == remote.Failure {
			return state.Err
		}
		if err := detail.Edit(); err != nil {
			return err
		}
		if err := detail.Submit(cli.ctx, ug); err != nil {
			return cli.submitFailed(detail.FieldErrors(), err)
		}
		g := detail.State().Data
		fmt.Fprintf(cli.out, "#%d %s/20\n", g.ID, grade.FormatValue(g.Value))
		return nil

	case "delete":
		fs := cli.newFlagSet("grades delete")
		id := idFlag(fs)
		yes := fs.Bool("yes", false, "Do not ask for confirmation.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.deleted(screen.NewGradeDetail(cli.svcs, *id, cli.withConfirm(*yes)).Delete(cli.ctx))

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) showGrade(id int) error {
	detail := screen.NewGradeDetail(cli.svcs, id, cli.deps)
	state := detail.Load(cli.ctx)
	if state.Status == remote.Failure {
		return state.Err
	}
	g := state.Data
	summary := cli.resolver.ResolveGrades(cli.ctx, []grade.Grade{g})[0]
	fmt.Fprintf(cli.out, "Note #%d\n", g.ID)
	fmt.Fprintf(cli.out, "  Élève : %s\n", summary.StudentName)
	fmt.Fprintf(cli.out, "  Matière : %s\n", summary.SubjectName)
	fmt.Fprintf(cli.out, "  Examen du : %s\n", summary.ExamDate)
	fmt.Fprintf(cli.out, "  Note : %s/20\n", grade.FormatValue(g.Value))
	return nil
}
