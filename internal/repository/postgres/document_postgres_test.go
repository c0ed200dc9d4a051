package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/model"
	"resumatch/internal/repository"
)

var columns = []string{"id", "kind", "filename", "storage_path", "size", "content_type", "created_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "doc-1",
		Kind:        model.KindResume,
		Filename:    "jane.pdf",
		StoragePath: "resume/doc-1/jane.pdf",
		Size:        2048,
		ContentType: "application/pdf",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(columns).
		AddRow(doc.ID, "resume", doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, "resume", doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, doc, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Create_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO documents").WillReturnError(errors.New("duplicate key"))

	result, err := NewDocumentPostgres(db).Create(context.Background(), &model.Document{ID: "x", Kind: model.KindResume})

	assert.EqualError(t, err, "insert document: duplicate key")
	assert.Nil(t, result)
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("doc-1", "job_description", "jd.pdf", "job_description/doc-1/jd.pdf", 100, "application/pdf", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
		assert.Equal(t, model.KindJobDescription, doc.Kind)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, doc)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("broken").
			WillReturnError(errors.New("conn reset"))

		doc, err := repo.FindByID(ctx, "broken")

		assert.EqualError(t, err, "find document: conn reset")
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	tests := []struct {
		name string
		kind model.DocumentKind
	}{
		{"all kinds", ""},
		{"resumes only", model.KindResume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
				WithArgs(string(tt.kind)).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

			rows := sqlmock.NewRows(columns).
				AddRow("doc-1", "resume", "cv.txt", "resume/doc-1/cv.txt", 100, "text/plain", time.Now())
			mock.ExpectQuery("SELECT (.+) FROM documents WHERE (.+) ORDER BY").
				WithArgs(10, 0, string(tt.kind)).
				WillReturnRows(rows)

			res, err := NewDocumentPostgres(db).List(context.Background(),
				repository.PageQuery{Limit: 10, Offset: 0, Kind: tt.kind})

			require.NoError(t, err)
			assert.Equal(t, 1, res.Total)
			require.Len(t, res.Items, 1)
			assert.Equal(t, model.KindResume, res.Items[0].Kind)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentPostgres_List_CountError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").WillReturnError(errors.New("timeout"))

	res, err := NewDocumentPostgres(db).List(context.Background(), repository.PageQuery{Limit: 10})

	assert.EqualError(t, err, "count documents: timeout")
	assert.Nil(t, res)
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "doc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
