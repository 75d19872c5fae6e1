package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/profiremanager/pfm-api/internal/models"
)

func newEmployeeRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func employeeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "password_hash", "phone",
		"emergency_contact", "rank", "employment_type", "role", "active",
		"employee_number", "hire_date", "max_weekly_hours", "training_ids", "created_at", "updated_at",
	})
}

func TestEmployeeRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	repo := NewEmployeeRepository(db)
	rank := models.RankLieutenant
	active := true

	rows := employeeRows().AddRow(
		"emp-1", "Jean", "Dupuis", "jean@caserne.qc.ca", "hash", "", "",
		rank, models.EmploymentPartTime, models.RoleEmployee, true,
		"E-001", time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), 40,
		pq.StringArray{"first-responder"}, time.Now(), time.Now(),
	)
	mock.ExpectQuery(regexp.QuoteMeta("rank = $2")).
		WithArgs("%dup%", rank, active).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("%dup%", rank, active).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	employees, total, err := repo.List(context.Background(), models.EmployeeFilter{
		Search: "dup",
		Rank:   &rank,
		Active: &active,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, employees, 1)
	require.Equal(t, "Jean", employees[0].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryListRejectsUnknownSort(t *testing.T) {
	db, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	repo := NewEmployeeRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY last_name ASC")).
		WillReturnRows(employeeRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.EmployeeFilter{
		SortBy:    "password_hash; DROP TABLE employees",
		SortOrder: "sideways",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	repo := NewEmployeeRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM employees WHERE LOWER(email) = LOWER($1)")).
		WithArgs("jean@caserne.qc.ca").
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "jean@caserne.qc.ca", "")
	require.NoError(t, err)
	require.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $2")).
		WithArgs("marc@caserne.qc.ca", "emp-1").
		WillReturnRows(sqlmock.NewRows([]string{"one"}))

	exists, err = repo.ExistsByEmail(context.Background(), "marc@caserne.qc.ca", "emp-1")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	repo := NewEmployeeRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO employees")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	emp := &models.Employee{
		FirstName:      "Marc",
		LastName:       "Tremblay",
		Email:          "marc@caserne.qc.ca",
		Rank:           models.RankFirefighter,
		EmploymentType: models.EmploymentPartTime,
		Role:           models.RoleEmployee,
		Active:         true,
		HireDate:       time.Date(2021, 5, 10, 0, 0, 0, 0, time.UTC),
		TrainingIDs:    pq.StringArray{"first-responder", "pump-operator"},
	}
	require.NoError(t, repo.Create(context.Background(), emp))
	require.NotEmpty(t, emp.ID)
	require.False(t, emp.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryUpdatePasswordAndDeactivate(t *testing.T) {
	db, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	repo := NewEmployeeRepository(db)
	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET password_hash = $2")).
		WithArgs("emp-1", "new-hash", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePassword(context.Background(), "emp-1", "new-hash", now))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET active = FALSE")).
		WithArgs("emp-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Deactivate(context.Background(), "emp-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
