// Package exportsvc writes school records to XLSX workbooks, and reads students from them.
package exportsvc

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/student"
)

const (
	ExamsSheet    = "Examens"
	GradesSheet   = "Notes"
	StudentsSheet = "Élèves"

	defaultSheet = "Sheet1"
)

var (
	examsHeader    = []interface{}{"ID", "Matière", "Date", "Participants"}
	gradesHeader   = []interface{}{"ID", "Élève", "Matière", "Date", "Note"}
	studentsHeader = []interface{}{"ID", "Nom", "Prénom", "Classe"}
)

// WriteExams writes one row per exam summary to the sheet ExamsSheet.
func WriteExams(w io.Writer, summaries []assoc.ExamSummary) error {
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []interface{}{s.Exam.ID, s.SubjectName, s.DateLabel, s.Participants})
	}
	return writeSheet(w, ExamsSheet, examsHeader, rows)
}

// WriteGrades writes one row per grade summary to the sheet GradesSheet.
func WriteGrades(w io.Writer, summaries []assoc.GradeSummary) error {
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []interface{}{s.Grade.ID, s.StudentName, s.SubjectName, s.ExamDate, s.Grade.Value})
	}
	return writeSheet(w, GradesSheet, gradesHeader, rows)
}

// WriteStudents writes one row per student to the sheet StudentsSheet.
func WriteStudents(w io.Writer, students []student.Student) error {
	rows := make([][]interface{}, 0, len(students))
	for _, s := range students {
		rows = append(rows, []interface{}{s.ID, s.LastName, s.FirstName, s.Class})
	}
	return writeSheet(w, StudentsSheet, studentsHeader, rows)
}

func writeSheet(w io.Writer, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return errors.Wrap(err, "computing header range")
	}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err = f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
		if err = f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

// ReadStudents reads the students of the first sheet of a workbook: the first row is a header,
// then columns are Nom, Prénom, Classe (an ID column in first position, as written by WriteStudents,
// is detected and skipped). Rows missing a field are skipped; their numbers are returned.
func ReadStudents(r io.Reader) (students []student.NewStudent, skipped []int, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errors.New("workbook does not contain any sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	offset := 0
	if len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "ID") {
		offset = 1
	}
	cell := func(row []string, i int) string {
		if i+offset < len(row) {
			return strings.TrimSpace(row[i+offset])
		}
		return ""
	}

	for i, row := range rows[1:] {
		ns := student.NewStudent{LastName: cell(row, 0), FirstName: cell(row, 1), Class: cell(row, 2)}
		if ns.LastName == "" || ns.FirstName == "" || ns.Class == "" {
			skipped = append(skipped, i+2)
			continue
		}
		students = append(students, ns)
	}
	return students, skipped, nil
}
