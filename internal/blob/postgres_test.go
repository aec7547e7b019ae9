package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func TestPostgresStoreSaveLoad(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	store := NewPostgresStore(mock, "workouts")

	mock.ExpectExec(`INSERT INTO blobs`).
		WithArgs("workouts", []byte(`[{"id":"w1"}]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	if err := store.Save(context.Background(), []byte(`[{"id":"w1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	mock.ExpectQuery(`SELECT data FROM blobs`).
		WithArgs("workouts").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow([]byte(`[{"id":"w1"}]`)))
	data, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `[{"id":"w1"}]` {
		t.Fatalf("unexpected data %q", data)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT data FROM blobs`).
		WithArgs("workouts").
		WillReturnError(pgx.ErrNoRows)

	store := NewPostgresStore(mock, "workouts")
	data, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("expected absent blob")
	}
}

func TestPostgresStoreErrors(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	store := NewPostgresStore(mock, "workouts")

	mock.ExpectQuery(`SELECT data FROM blobs`).WithArgs("workouts").WillReturnError(errItem)
	if _, _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}

	mock.ExpectExec(`INSERT INTO blobs`).WithArgs("workouts", []byte("x")).WillReturnError(errItem)
	if err := store.Save(context.Background(), []byte("x")); err == nil {
		t.Fatalf("expected save error")
	}
}

var errItem = errors.New("db error")
