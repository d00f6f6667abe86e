package toggle_audit

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
)

const (
	insertQuery = "INSERT INTO notification_association_changes (organization_id,template_id,bucket,action,changed_at) VALUES ($1,$2,$3,$4,$5) RETURNING id"
	listQuery   = "SELECT id, organization_id, template_id, bucket, action, changed_at FROM notification_association_changes WHERE organization_id = $1 ORDER BY changed_at DESC, id DESC LIMIT 50 OFFSET 0"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func testChange(changedAt time.Time) *domain.AssociationChange {
	return &domain.AssociationChange{
		OrganizationID: 1,
		TemplateID:     44,
		Bucket:         domain.BucketSuccess,
		Action:         domain.ActionDisassociate,
		ChangedAt:      changedAt,
	}
}

func TestRepository_Record(t *testing.T) {
	repo, mock := newMockRepository(t)
	changedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs(int64(1), int64(44), "success", "disassociate", changedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	change := testChange(changedAt)
	require.NoError(t, repo.Record(t.Context(), change))

	assert.Equal(t, int64(7), change.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Record_ExecError(t *testing.T) {
	repo, mock := newMockRepository(t)
	changedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("connection refused"))

	change := testChange(changedAt)
	err := repo.Record(t.Context(), change)

	require.ErrorIs(t, err, ErrExecQuery)
	assert.Zero(t, change.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)
	first := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(listQuery).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(2), int64(1), int64(44), "error", "associate", first).
			AddRow(int64(1), int64(1), int64(44), "success", "disassociate", second))

	changes, err := repo.List(t.Context(), ListFilter{OrganizationID: 1})
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, &domain.AssociationChange{
		ID:             2,
		OrganizationID: 1,
		TemplateID:     44,
		Bucket:         domain.BucketError,
		Action:         domain.ActionAssociate,
		ChangedAt:      first,
	}, changes[0])
	assert.Equal(t, domain.ActionDisassociate, changes[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Errors(t *testing.T) {
	changedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(listQuery).WillReturnError(errors.New("connection refused"))
			},
			wantErr: ErrExecQuery,
		},
		{
			name: "row does not scan",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(columns).
					AddRow("not-a-number", int64(1), int64(44), "error", "associate", changedAt))
			},
			wantErr: ErrScanRow,
		},
		{
			name: "iteration fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(columns).
					AddRow(int64(1), int64(1), int64(44), "error", "associate", changedAt).
					RowError(0, errors.New("connection reset")))
			},
			wantErr: ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setup(mock)

			changes, err := repo.List(t.Context(), ListFilter{OrganizationID: 1})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, changes)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
