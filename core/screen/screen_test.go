package screen_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/carnet/apps/api/echo"
	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/core/screen"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
	"github.com/trezcool/carnet/storage/restapi"
	"github.com/trezcool/carnet/tests"
)

// requestCounter counts the requests reaching the API, per method.
type requestCounter struct {
	next http.Handler
	fail string // answer 500 to every request of this method

	mu     sync.Mutex
	counts map[string]int
}

func (c *requestCounter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[r.Method]++
	fail := c.fail
	c.mu.Unlock()

	if fail != "" && r.Method == fail {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
		return
	}
	c.next.ServeHTTP(w, r)
}

func (c *requestCounter) failOn(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = method
}

func (c *requestCounter) count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[method]
}

type fixture struct {
	svcs      screen.Services
	deps      screen.Deps
	alerter   *testutil.Alerter
	navigator *testutil.Navigator
	logger    *testutil.Logger
	api       *requestCounter
	repos     testutil.Repos
	school    testutil.School
}

// setup seeds a stub API and returns screens dependencies talking to it through the REST client.
func setup(t *testing.T) *fixture {
	_, repos := testutil.NewInmemRepos()
	school := testutil.SeedSchool(t, repos)
	validate, translator := testutil.NewValidator()
	stubSvcs := testutil.NewServices(repos, validate)

	api := &requestCounter{next: echoapi.NewServer(&echoapi.Options{
		TestMode:       true,
		DisableReqLogs: true,
		Translator:     translator,
		StudentSvc:     stubSvcs.Students,
		SubjectSvc:     stubSvcs.Subjects,
		ExamSvc:        stubSvcs.Exams,
		GradeSvc:       stubSvcs.Grades,
	})}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	conf := new(core.Config)
	conf.API.BaseURL = srv.URL
	conf.API.Timeout = 2 * time.Second
	logger := new(testutil.Logger)
	client, err := restapi.NewClient(conf, logger)
	require.NoError(t, err)

	f := &fixture{
		svcs: screen.Services{
			Students: student.NewService(client.Students(), validate),
			Subjects: subject.NewService(client.Subjects(), validate),
			Exams:    exam.NewService(client.Exams(), validate),
			Grades:   grade.NewService(client.Grades(), validate),
		},
		alerter:   &testutil.Alerter{Answer: true},
		navigator: new(testutil.Navigator),
		logger:    logger,
		api:       api,
		repos:     repos,
		school:    school,
	}
	f.deps = screen.Deps{
		Navigator:  f.navigator,
		Alerter:    f.alerter,
		Translator: translator,
		Logger:     logger,
		Page:       core.Page{}.Clean(),
	}
	return f
}

func TestGradeForm(t *testing.T) {
	t.Run("out of range is never sent", func(t *testing.T) {
		f := setup(t)
		form := screen.NewGradeForm(f.svcs, f.deps)

		_, err := form.Submit(context.Background(), grade.NewGrade{StudentID: f.school.Marie.ID, ExamID: f.school.Mecanique.ID, SubjectID: f.school.Physique.ID, Value: 21})
		assert.True(t, core.IsValidation(err))
		assert.Equal(t, map[string]string{"valeur": "la note doit être entre 0 et 20"}, form.FieldErrors())
		assert.Zero(t, f.api.count(http.MethodPost))
		assert.Empty(t, f.alerter.Alerts())
		assert.Zero(t, f.navigator.Backs())
		assert.False(t, form.Submitting())
	})

	t.Run("created", func(t *testing.T) {
		f := setup(t)
		form := screen.NewGradeForm(f.svcs, f.deps)

		g, err := form.Submit(context.Background(), grade.NewGrade{StudentID: f.school.Marie.ID, ExamID: f.school.Mecanique.ID, SubjectID: f.school.Physique.ID, Value: 20})
		require.NoError(t, err)
		assert.Equal(t, 20.0, g.Value)
		assert.Equal(t, 1, f.api.count(http.MethodPost))
		assert.Equal(t, []testutil.Alert{{Title: "Succès", Message: screen.GradeMessages.Created}}, f.alerter.Alerts())
		assert.Equal(t, 1, f.navigator.Backs())
		assert.Nil(t, form.FieldErrors())
		assert.Empty(t, form.Error())
	})

	t.Run("remote failure", func(t *testing.T) {
		f := setup(t)
		f.api.failOn(http.MethodPost)
		form := screen.NewGradeForm(f.svcs, f.deps)

		_, err := form.Submit(context.Background(), grade.NewGrade{StudentID: f.school.Marie.ID, ExamID: f.school.Mecanique.ID, SubjectID: f.school.Physique.ID, Value: 10})
		assert.Error(t, err)
		assert.Equal(t, screen.GradeMessages.CreateFailed, form.Error())
		assert.Equal(t, []testutil.Alert{{Title: "Erreur", Message: screen.GradeMessages.CreateFailed}}, f.alerter.Alerts())
		assert.Zero(t, f.navigator.Backs(), "the form stays open")
		assert.NotEmpty(t, f.logger.Logs("error"))
	})
}

func TestSubjectDetail_Delete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := setup(t)
		detail := screen.NewSubjectDetail(f.svcs, f.school.Maths.ID, f.deps)
		require.Equal(t, remote.Success, detail.Load(context.Background()).Status)

		deleted, err := detail.Delete(context.Background())
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, 1, f.api.count(http.MethodDelete), "exactly one DELETE must be sent")
		assert.Equal(t, 1, f.navigator.Backs())
		assert.Len(t, f.alerter.Confirms(), 1)
		assert.Contains(t, f.alerter.Alerts(), testutil.Alert{Title: "Succès", Message: screen.SubjectMessages.Deleted})

		// the API deletes the exams and grades of the subject
		exams, err := f.repos.Exams.List(context.Background(), core.Page{}.Clean())
		require.NoError(t, err)
		assert.Len(t, exams, 1)
	})

	t.Run("declined", func(t *testing.T) {
		f := setup(t)
		f.alerter.Answer = false
		detail := screen.NewSubjectDetail(f.svcs, f.school.Maths.ID, f.deps)

		deleted, err := detail.Delete(context.Background())
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Zero(t, f.api.count(http.MethodDelete))
		assert.Zero(t, f.navigator.Backs())
	})

	t.Run("failed", func(t *testing.T) {
		f := setup(t)
		f.api.failOn(http.MethodDelete)
		detail := screen.NewSubjectDetail(f.svcs, f.school.Maths.ID, f.deps)
		require.Equal(t, remote.Success, detail.Load(context.Background()).Status)

		deleted, err := detail.Delete(context.Background())
		assert.Error(t, err)
		assert.False(t, deleted)
		assert.Equal(t, 1, f.api.count(http.MethodDelete))
		assert.Zero(t, f.navigator.Backs(), "the screen stays on failure")
		assert.Equal(t, []testutil.Alert{{Title: "Erreur", Message: screen.SubjectMessages.DeleteFailed}}, f.alerter.Alerts())
		assert.Equal(t, "Mathématiques", detail.State().Data.Name)
	})
}

func TestStudentDetail_Submit(t *testing.T) {
	f := setup(t)
	detail := screen.NewStudentDetail(f.svcs, f.school.Jean.ID, f.deps)

	err := detail.Submit(context.Background(), student.UpdateStudent{})
	assert.ErrorIs(t, err, screen.ErrNotEditing)

	assert.ErrorIs(t, detail.Edit(), screen.ErrNotLoaded)
	require.Equal(t, remote.Success, detail.Load(context.Background()).Status)
	require.NoError(t, detail.Edit())
	assert.Equal(t, screen.Editing, detail.Mode())

	// invalid: stays in edit mode, nothing is sent
	blank := " "
	err = detail.Submit(context.Background(), student.UpdateStudent{LastName: &blank})
	assert.True(t, core.IsValidation(err))
	assert.Equal(t, screen.Editing, detail.Mode())
	assert.Equal(t, map[string]string{"nom": "ce champ ne peut pas être vide"}, detail.FieldErrors())
	assert.Zero(t, f.api.count(http.MethodPut)+f.api.count(http.MethodPatch))

	// valid: back to viewing with the updated item
	class := student.LevelL2
	require.NoError(t, detail.Submit(context.Background(), student.UpdateStudent{Class: &class}))
	assert.Equal(t, screen.Viewing, detail.Mode())
	assert.Nil(t, detail.FieldErrors())
	assert.Equal(t, student.LevelL2, detail.State().Data.Class)
	assert.Equal(t, "Jean", detail.State().Data.FirstName)
	assert.Contains(t, f.alerter.Alerts(), testutil.Alert{Title: "Succès", Message: screen.StudentMessages.Updated})

	// remote failure: alerted, stays in edit mode
	require.NoError(t, f.repos.Students.Delete(context.Background(), f.school.Jean.ID))
	require.NoError(t, detail.Edit())
	err = detail.Submit(context.Background(), student.UpdateStudent{Class: &class})
	assert.Error(t, err)
	assert.Equal(t, screen.Editing, detail.Mode())
	assert.Contains(t, f.alerter.Alerts(), testutil.Alert{Title: "Erreur", Message: screen.StudentMessages.UpdateFailed})

	detail.Cancel()
	assert.Equal(t, screen.Viewing, detail.Mode())
}

func TestLists(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("students by class", func(t *testing.T) {
		list := screen.NewStudentList(f.svcs, f.deps)
		assert.Nil(t, list.Rows())
		require.Equal(t, remote.Success, list.Load(ctx).Status)

		assert.Len(t, list.Rows(), 3)
		list.SetFilter(student.LevelL1)
		assert.Len(t, list.Rows(), 2)
		list.SetFilter(student.AllLevelsFR)
		assert.Len(t, list.Rows(), 3)
		assert.Equal(t, 1, f.api.count(http.MethodGet), "filtering must not refetch")
	})

	t.Run("subjects with counts", func(t *testing.T) {
		list := screen.NewSubjectList(f.svcs, f.deps)
		require.Equal(t, remote.Success, list.Load(ctx).Status)
		rows := list.Rows()
		require.Len(t, rows, 2)
		assert.Equal(t, 2, rows[0].ExamCount)
		assert.Equal(t, 3, rows[0].GradeCount)

		list.SetFilter("phys")
		rows = list.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, "Physique", rows[0].Subject.Name)
	})

	t.Run("exams", func(t *testing.T) {
		list := screen.NewExamList(f.svcs, f.deps)
		require.Equal(t, remote.Success, list.Load(ctx).Status)
		rows := list.Rows()
		require.Len(t, rows, 3)
		assert.Equal(t, "Mathématiques", rows[0].SubjectName)
		assert.Equal(t, "15/01/2024", rows[0].DateLabel)
		assert.Equal(t, 2, rows[0].Participants)
	})

	t.Run("grades", func(t *testing.T) {
		list := screen.NewGradeList(f.svcs, f.deps)
		require.Equal(t, remote.Success, list.Load(ctx).Status)
		list.SetFilter("curie")
		rows := list.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, "Marie Curie", rows[0].StudentName)
		assert.Equal(t, "Mathématiques", rows[0].SubjectName)
		assert.Equal(t, "20/02/2024", rows[0].ExamDate)
	})
}

// seedClass adds n students, each graded on exam; the last student is graded first.
func seedClass(t *testing.T, f *fixture, n int, examID, subjectID int) (student.Student, grade.Grade) {
	students := make([]student.Student, 0, n)
	for i := 1; i <= n; i++ {
		students = append(students, testutil.CreateStudent(t, f.repos.Students, fmt.Sprintf("Nom%02d", i), fmt.Sprintf("Prénom%02d", i), student.LevelL2))
	}
	last := students[n-1]
	lastGrade := testutil.CreateGrade(t, f.repos.Grades, last.ID, examID, subjectID, 11)
	for _, s := range students[:n-1] {
		testutil.CreateGrade(t, f.repos.Grades, s.ID, examID, subjectID, 10)
	}
	return last, lastGrade
}

func gradeRow(rows []assoc.GradeSummary, id int) (assoc.GradeSummary, bool) {
	for _, r := range rows {
		if r.Grade.ID == id {
			return r, true
		}
	}
	return assoc.GradeSummary{}, false
}

func TestLists_beyondOnePage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	last, lastGrade := seedClass(t, f, 25, f.school.Algebre.ID, f.school.Maths.ID)

	assertResolved := func(t *testing.T, rows []assoc.GradeSummary) {
		for _, r := range rows {
			assert.NotEqual(t, student.UnknownLabel, r.StudentName, "grade %d", r.Grade.ID)
			assert.NotEqual(t, subject.UnknownLabel, r.SubjectName, "grade %d", r.Grade.ID)
			assert.NotEqual(t, exam.UnknownDate, r.ExamDate, "grade %d", r.Grade.ID)
		}
	}

	t.Run("grades of the first page", func(t *testing.T) {
		list := screen.NewGradeList(f.svcs, f.deps)
		require.Equal(t, remote.Success, list.Load(ctx).Status)
		rows := list.Rows()
		assert.Len(t, rows, core.DefaultLimit)
		assertResolved(t, rows)

		row, ok := gradeRow(rows, lastGrade.ID)
		require.True(t, ok)
		assert.Equal(t, last.FullName(), row.StudentName)
	})

	t.Run("grades of a skipped page", func(t *testing.T) {
		deps := f.deps
		deps.Page = core.Page{Skip: 1}.Clean()
		list := screen.NewGradeList(f.svcs, deps)
		require.Equal(t, remote.Success, list.Load(ctx).Status)
		rows := list.Rows()
		assert.Len(t, rows, core.DefaultLimit)
		assertResolved(t, rows)

		row, ok := gradeRow(rows, f.school.JeanAlgebre.ID)
		require.True(t, ok)
		assert.Equal(t, "Mathématiques", row.SubjectName)
		assert.Equal(t, "15/01/2024", row.ExamDate)
		row, ok = gradeRow(rows, f.school.AwaMecanique.ID)
		require.True(t, ok)
		assert.Equal(t, "Awa Diallo", row.StudentName)
	})

	t.Run("counts over every grade", func(t *testing.T) {
		exams := screen.NewExamList(f.svcs, f.deps)
		require.Equal(t, remote.Success, exams.Load(ctx).Status)
		require.NotEmpty(t, exams.Rows())
		assert.Equal(t, f.school.Algebre.ID, exams.Rows()[0].Exam.ID)
		assert.Equal(t, 27, exams.Rows()[0].Participants)

		subjects := screen.NewSubjectList(f.svcs, f.deps)
		require.Equal(t, remote.Success, subjects.Load(ctx).Status)
		require.NotEmpty(t, subjects.Rows())
		assert.Equal(t, "Mathématiques", subjects.Rows()[0].Subject.Name)
		assert.Equal(t, 28, subjects.Rows()[0].GradeCount)
	})
}

func TestList_loadFailure(t *testing.T) {
	f := setup(t)
	conf := new(core.Config)
	conf.API.BaseURL = "http://127.0.0.1:1"
	conf.API.Timeout = time.Second
	client, err := restapi.NewClient(conf, f.logger)
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	svcs := screen.Services{Students: student.NewService(client.Students(), validate)}

	list := screen.NewStudentList(svcs, f.deps)
	state := list.Load(context.Background())
	assert.Equal(t, remote.Failure, state.Status)
	assert.Equal(t, screen.StudentMessages.LoadFailed, state.Message)
	assert.Nil(t, list.Rows())
}
