package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/screen"
	"github.com/trezcool/carnet/core/student"
	exportsvc "github.com/trezcool/carnet/services/export"
)

func (cli *commandLine) students(action string, args []string) error {
	switch action {
	case "list":
		fs := cli.newFlagSet("students list")
		class := fs.String("class", student.AllLevelsFR, "Class level ("+strings.Join(student.ClassLevels, ", ")+", Tous).")
		search := fs.String("search", "", "Search on the first and last names.")
		page := addPageFlags(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := checkLevel(*class, true); err != nil {
			return err
		}
		return cli.listStudents(*class, *search, page)

	case "show":
		fs := cli.newFlagSet("students show")
		id := idFlag(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.showStudent(*id)

	case "create":
		fs := cli.newFlagSet("students create")
		lastName := fs.String("nom", "", "The student's last name.")
		firstName := fs.String("prenom", "", "The student's first name.")
		class := fs.String("classe", "", "The student's class level.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := checkLevel(*class, false); err != nil {
			return err
		}
		form := screen.NewStudentForm(cli.svcs, cli.deps)
		s, err := form.Submit(cli.ctx, student.NewStudent{LastName: *lastName, FirstName: *firstName, Class: *class})
		if err != nil {
			return cli.submitFailed(form.FieldErrors(), err)
		}
		fmt.Fprintf(cli.out, "#%d %s (%s)\n", s.ID, s.FullName(), s.Class)
		return nil

	case "update":
		fs := cli.newFlagSet("students update")
		id := idFlag(fs)
		lastName := fs.String("nom", "", "The student's last name.")
		firstName := fs.String("prenom", "", "The student's first name.")
		class := fs.String("classe", "", "The student's class level.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		var us student.UpdateStudent
		set := visited(fs)
		if set["nom"] {
			us.LastName = lastName
		}
		if set["prenom"] {
			us.FirstName = firstName
		}
		if set["classe"] {
			if err := checkLevel(*class, false); err != nil {
				return err
			}
			us.Class = class
		}
		detail := screen.NewStudentDetail(cli.svcs, *id, cli.deps)
		if state := detail.Load(cli.ctx); state.Status == remote.Failure {
			return state.Err
		}
		if err := detail.Edit(); err != nil {
			return err
		}
		if err := detail.Submit(cli.ctx, us); err != nil {
			return cli.submitFailed(detail.FieldErrors(), err)
		}
		printStudent(cli, detail.State().Data)
		return nil

	case "delete":
		fs := cli.newFlagSet("students delete")
		id := idFlag(fs)
		yes := fs.Bool("yes", false, "Do not ask for confirmation.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.deleted(screen.NewStudentDetail(cli.svcs, *id, cli.withConfirm(*yes)).Delete(cli.ctx))

	case "import":
		fs := cli.newFlagSet("students import")
		file := fs.String("file", "", "The workbook to import (columns: nom, prenom, classe).")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *file == "" {
			fs.Usage()
			return errHelp
		}
		return cli.importStudents(*file)

	case "export":
		fs := cli.newFlagSet("students export")
		file := fs.String("file", "", "The workbook to write.")
		class := fs.String("class", student.AllLevelsFR, "Class level to export.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := checkLevel(*class, true); err != nil {
			return err
		}
		list := screen.NewStudentList(cli.svcs, cli.deps)
		if state := list.Load(cli.ctx); state.Status == remote.Failure {
			return loadFailed(cli, state)
		}
		list.SetFilter(*class)
		f, err := cli.createFile(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		return exportsvc.WriteStudents(f, list.Rows())

	default:
		cli.printUsage()
		return errHelp
	}
}

// checkLevel rejects unknown class levels, suggesting the closest one.
func checkLevel(level string, allowAll bool) error {
	if level == "" || student.IsKnownLevel(level) || (allowAll && student.IsAllLevels(level)) {
		return nil
	}
	msg := fmt.Sprintf("classe inconnue %q", level)
	if suggestion, ok := student.SuggestLevel(level); ok {
		msg += fmt.Sprintf(", vouliez-vous dire %q ?", suggestion)
	}
	return core.NewArgumentError(msg)
}

func (cli *commandLine) listStudents(class, search string, page pageFlags) error {
	list := screen.NewStudentList(cli.svcs, cli.withPage(page))
	if state := list.Load(cli.ctx); state.Status == remote.Failure {
		return loadFailed(cli, state)
	}
	list.SetFilter(class)

	rows := student.Search(list.Rows(), search)
	if len(rows) == 0 {
		fmt.Fprintln(cli.out, "Aucun élève trouvé.")
		return nil
	}
	w := newTable(cli.out, "ID", "NOM", "PRÉNOM", "CLASSE")
	for _, s := range rows {
		printRow(w, itoa(s.ID), s.LastName, s.FirstName, s.Class)
	}
	return w.Flush()
}

func (cli *commandLine) showStudent(id int) error {
	detail := screen.NewStudentDetail(cli.svcs, id, cli.deps)
	state := detail.Load(cli.ctx)
	if state.Status == remote.Failure {
		return state.Err
	}
	printStudent(cli, state.Data)
	return nil
}

func printStudent(cli *commandLine, s student.Student) {
	fmt.Fprintf(cli.out, "Élève #%d\n", s.ID)
	fmt.Fprintf(cli.out, "  Nom : %s\n", s.LastName)
	fmt.Fprintf(cli.out, "  Prénom : %s\n", s.FirstName)
	fmt.Fprintf(cli.out, "  Classe : %s\n", s.Class)
	if s.CreatedAt != nil {
		fmt.Fprintf(cli.out, "  Créé le : %s\n", s.CreatedAt.Local().Format(dateTimeLayout))
	}
	if s.UpdatedAt != nil {
		fmt.Fprintf(cli.out, "  Modifié le : %s\n", s.UpdatedAt.Local().Format(dateTimeLayout))
	}
}

// importStudents creates the students listed in a workbook, one after the other.
// Invalid rows are reported and skipped.
func (cli *commandLine) importStudents(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, skipped, err := exportsvc.ReadStudents(f)
	if err != nil {
		return err
	}
	for _, line := range skipped {
		fmt.Fprintf(cli.out, "ligne %d ignorée : incomplète\n", line)
	}

	var created, failed int
	for _, ns := range rows {
		if err := checkLevel(ns.Class, false); err != nil {
			fmt.Fprintf(cli.out, "%s %s ignoré : %v\n", ns.FirstName, ns.LastName, err)
			failed++
			continue
		}
		s, err := cli.svcs.Students.Create(cli.ctx, ns)
		if err != nil {
			fmt.Fprintf(cli.out, "%s %s ignoré : %v\n", ns.FirstName, ns.LastName, err)
			if fldErrs := core.FieldMessages(err, cli.deps.Translator); len(fldErrs) > 0 {
				printFieldErrors(cli.out, fldErrs)
			}
			failed++
			continue
		}
		fmt.Fprintf(cli.out, "#%d %s (%s)\n", s.ID, s.FullName(), s.Class)
		created++
	}
	fmt.Fprintf(cli.out, "%d élève(s) importé(s), %d en échec\n", created, failed)
	return nil
}
