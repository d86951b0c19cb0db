package assoc_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
	"github.com/trezcool/carnet/tests"
)

func fetchSchool(t *testing.T) (testutil.Repos, testutil.School, assoc.Lists) {
	_, repos := testutil.NewInmemRepos()
	school := testutil.SeedSchool(t, repos)
	lists, err := assoc.FetchLists(context.Background(), assoc.Sources{
		Students: repos.Students,
		Subjects: repos.Subjects,
		Exams:    repos.Exams,
		Grades:   repos.Grades,
	}, core.Page{}.Clean())
	require.NoError(t, err)
	return repos, school, lists
}

func TestIndex_ExamSummaries(t *testing.T) {
	_, school, lists := fetchSchool(t)
	summaries := lists.Index().ExamSummaries(lists.Exams)
	require.Len(t, summaries, 3)

	assert.Equal(t, school.Algebre.ID, summaries[0].Exam.ID)
	assert.Equal(t, "Mathématiques", summaries[0].SubjectName)
	assert.Equal(t, "15/01/2024", summaries[0].DateLabel)
	assert.Equal(t, 2, summaries[0].Participants)
	assert.Equal(t, 1, summaries[1].Participants)
	assert.Equal(t, "Physique", summaries[2].SubjectName)
}

func TestIndex_SubjectSummaries(t *testing.T) {
	_, _, lists := fetchSchool(t)
	summaries := lists.Index().SubjectSummaries(lists.Subjects)
	require.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].ExamCount)
	assert.Equal(t, 3, summaries[0].GradeCount)
	assert.Equal(t, 1, summaries[1].ExamCount)
	assert.Equal(t, 1, summaries[1].GradeCount)
}

func TestIndex_GradeSummaries(t *testing.T) {
	_, _, lists := fetchSchool(t)
	summaries := lists.Index().GradeSummaries(lists.Grades)
	require.Len(t, summaries, 4)
	assert.Equal(t, "Awa Diallo", summaries[0].StudentName)
	assert.Equal(t, "Mathématiques", summaries[0].SubjectName)
	assert.Equal(t, "15/01/2024", summaries[0].ExamDate)

	filtered := assoc.FilterGrades(summaries, "PHYS")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Awa Diallo", filtered[0].StudentName)
	assert.Len(t, assoc.FilterGrades(summaries, "awa"), 2)
	assert.Len(t, assoc.FilterGrades(summaries, ""), 4)
}

func TestIndex_placeholders(t *testing.T) {
	ix := assoc.NewIndex(nil, nil, []exam.Exam{{ID: 7, SubjectID: 99, Date: "not a date"}}, nil)

	exams := ix.ExamSummaries([]exam.Exam{{ID: 7, SubjectID: 99, Date: "not a date"}, {ID: 8, SubjectID: 1, Date: "2024-01-15", Subject: &subject.Subject{ID: 1, Name: "Chimie"}}})
	require.Len(t, exams, 2, "unresolved records must never be dropped")
	assert.Equal(t, subject.UnknownLabel, exams[0].SubjectName)
	assert.Equal(t, exam.UnknownDate, exams[0].DateLabel)
	assert.Equal(t, "Chimie", exams[1].SubjectName, "the embedded subject is used when the list has none")

	grades := ix.GradeSummaries([]grade.Grade{{ID: 1, StudentID: 5, ExamID: 42, SubjectID: 3, Value: 10}})
	require.Len(t, grades, 1)
	assert.Equal(t, student.UnknownLabel, grades[0].StudentName)
	assert.Equal(t, subject.UnknownLabel, grades[0].SubjectName)
	assert.Equal(t, exam.UnknownDate, grades[0].ExamDate)
}

func TestFetchLists_primaryPage(t *testing.T) {
	_, repos := testutil.NewInmemRepos()
	school := testutil.SeedSchool(t, repos)
	var extra []student.Student
	for i := 0; i < 25; i++ {
		s := testutil.CreateStudent(t, repos.Students, "Nom", string(rune('A'+i)), student.LevelL3)
		extra = append(extra, s)
		testutil.CreateGrade(t, repos.Grades, s.ID, school.Algebre.ID, school.Maths.ID, 14)
	}
	src := assoc.Sources{
		Primary:  assoc.KindGrades,
		Students: repos.Students,
		Subjects: repos.Subjects,
		Exams:    repos.Exams,
		Grades:   repos.Grades,
	}

	lists, err := assoc.FetchLists(context.Background(), src, core.Page{Skip: 9}.Clean())
	require.NoError(t, err)
	assert.Len(t, lists.Grades, core.DefaultLimit, "only the primary list is paged")
	assert.Len(t, lists.Students, 28)
	assert.Len(t, lists.Exams, 3)

	summaries := lists.Index().GradeSummaries(lists.Grades)
	for _, sum := range summaries {
		assert.NotEqual(t, student.UnknownLabel, sum.StudentName)
	}
	assert.Equal(t, extra[len(extra)-1].FullName(), summaries[len(summaries)-1].StudentName)

	src.Primary = assoc.KindExams
	lists, err = assoc.FetchLists(context.Background(), src, core.Page{Limit: 1})
	require.NoError(t, err)
	require.Len(t, lists.Exams, 1)
	assert.Len(t, lists.Grades, 29)
	exams := lists.Index().ExamSummaries(lists.Exams)
	assert.Equal(t, 27, exams[0].Participants)
}

func TestListAll(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		wantCalls int
	}{
		{name: "empty", total: 0, wantCalls: 1},
		{name: "short page", total: 42, wantCalls: 1},
		{name: "exact pages", total: 2 * assoc.WholePageSize, wantCalls: 3},
		{name: "several pages", total: 2*assoc.WholePageSize + 5, wantCalls: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pages []core.Page
			list := func(_ context.Context, page core.Page) ([]int, error) {
				pages = append(pages, page)
				var items []int
				for i := page.Skip; i < tt.total && i < page.Skip+page.Limit; i++ {
					items = append(items, i)
				}
				return items, nil
			}

			all, err := assoc.ListAll(context.Background(), list)
			require.NoError(t, err)
			assert.Len(t, all, tt.total)
			assert.Len(t, pages, tt.wantCalls)
			for i, page := range pages {
				assert.Equal(t, i*assoc.WholePageSize, page.Skip)
				assert.Equal(t, assoc.WholePageSize, page.Limit)
			}
		})
	}

	t.Run("failure", func(t *testing.T) {
		_, err := assoc.ListAll(context.Background(), func(context.Context, core.Page) ([]int, error) {
			return nil, errUnreachable
		})
		assert.ErrorIs(t, err, errUnreachable)
	})
}

func TestFetchLists_failure(t *testing.T) {
	_, repos := testutil.NewInmemRepos()
	_, err := assoc.FetchLists(context.Background(), assoc.Sources{
		Subjects: repos.Subjects,
		Grades:   failingGrades{},
	}, core.Page{}.Clean())
	assert.ErrorIs(t, err, errUnreachable)
}

var errUnreachable = errors.New("unreachable")

type failingGrades struct{}

func (failingGrades) List(context.Context, core.Page) ([]grade.Grade, error) {
	return nil, errUnreachable
}

// countingSubjects counts the fetches per id and fails for the ids in fail.
type countingSubjects struct {
	subject.Repository
	fail map[int]bool

	mu    sync.Mutex
	calls map[int]int
}

func (r *countingSubjects) Get(ctx context.Context, id int) (subject.Subject, error) {
	r.mu.Lock()
	if r.calls == nil {
		r.calls = make(map[int]int)
	}
	r.calls[id]++
	r.mu.Unlock()
	if r.fail[id] {
		return subject.Subject{}, errUnreachable
	}
	return r.Repository.Get(ctx, id)
}

func TestResolver(t *testing.T) {
	repos, school, lists := fetchSchool(t)
	subjects := &countingSubjects{Repository: repos.Subjects, fail: map[int]bool{school.Physique.ID: true}}
	logger := new(testutil.Logger)
	resolver := assoc.NewResolver(repos.Students, subjects, repos.Exams, logger)

	t.Run("exams", func(t *testing.T) {
		summaries := resolver.ResolveExams(context.Background(), lists.Exams)
		require.Len(t, summaries, 3)
		assert.Equal(t, "Mathématiques", summaries[0].SubjectName)
		assert.Equal(t, "Mathématiques", summaries[1].SubjectName)
		assert.Equal(t, subject.UnknownLabel, summaries[2].SubjectName, "a failed dependent fetch falls back to a placeholder")
		assert.Equal(t, 2, summaries[0].Participants)
		assert.Equal(t, 1, subjects.calls[school.Maths.ID], "each id is fetched once per call")
		assert.NotEmpty(t, logger.Logs("warn"))
	})

	t.Run("grades", func(t *testing.T) {
		summaries := resolver.ResolveGrades(context.Background(), lists.Grades)
		require.Len(t, summaries, 4)
		assert.Equal(t, "Awa Diallo", summaries[0].StudentName)
		assert.Equal(t, "Mathématiques", summaries[0].SubjectName)
		assert.Equal(t, "15/01/2024", summaries[0].ExamDate)
		assert.Equal(t, subject.UnknownLabel, summaries[2].SubjectName)
		assert.Equal(t, "05/03/2024", summaries[2].ExamDate)
	})

	t.Run("missing student", func(t *testing.T) {
		require.NoError(t, repos.Students.Delete(context.Background(), school.Marie.ID))
		summaries := resolver.ResolveGrades(context.Background(), []grade.Grade{school.MarieAnalyse})
		require.Len(t, summaries, 1)
		assert.Equal(t, student.UnknownLabel, summaries[0].StudentName)
		assert.Equal(t, "20/02/2024", summaries[0].ExamDate)
	})
}
