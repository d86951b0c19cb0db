package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/student"
)

var nowFunc = func() time.Time { return time.Now().UTC() } // mockable

type studentRow struct {
	ID        int       `db:"id"`
	LastName  string    `db:"nom"`
	FirstName string    `db:"prenom"`
	Class     string    `db:"classe"`
	CreatedAt null.Time `db:"created_at"`
	UpdatedAt null.Time `db:"updated_at"`
}

func (r studentRow) toStudent() student.Student {
	return student.Student{
		ID:        r.ID,
		LastName:  r.LastName,
		FirstName: r.FirstName,
		Class:     r.Class,
		CreatedAt: r.CreatedAt.Ptr(),
		UpdatedAt: r.UpdatedAt.Ptr(),
	}
}

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) List(ctx context.Context, page core.Page) ([]student.Student, error) {
	skip, limit := pageArgs(page)
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM eleves ORDER BY id OFFSET $1 LIMIT $2`, skip, limit); err != nil {
		return nil, dbError(err, student.ErrNotFound, "listing students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.toStudent())
	}
	return students, nil
}

func (repo *studentRepository) Get(ctx context.Context, id int) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM eleves WHERE id = $1`, id); err != nil {
		return student.Student{}, dbError(err, student.ErrNotFound, "getting student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) Create(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	now := null.TimeFrom(nowFunc())
	var row studentRow
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO eleves (nom, prenom, classe, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING *`,
		ns.LastName, ns.FirstName, ns.Class, now,
	).StructScan(&row)
	if err != nil {
		return student.Student{}, dbError(err, student.ErrNotFound, "creating student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) Update(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	s, err := repo.Get(ctx, id)
	if err != nil {
		return student.Student{}, err
	}
	s = us.Apply(s)

	var row studentRow
	err = repo.db.QueryRowxContext(ctx,
		`UPDATE eleves SET nom = $1, prenom = $2, classe = $3, updated_at = $4 WHERE id = $5 RETURNING *`,
		s.LastName, s.FirstName, s.Class, null.TimeFrom(nowFunc()), id,
	).StructScan(&row)
	if err != nil {
		return student.Student{}, dbError(err, student.ErrNotFound, "updating student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) Delete(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM eleves WHERE id = $1`, id)
	if err != nil {
		return dbError(err, student.ErrNotFound, "deleting student")
	}
	return checkAffected(res, student.ErrNotFound)
}
