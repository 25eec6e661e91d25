//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/database"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/repositories"
	"github.com/stridephysio/practice-engine/pkg/testhelpers"
)

// tenantContext opens a tenant-scoped connection for accountID and returns a
// context carrying it. The scope is released when the test finishes.
func tenantContext(t *testing.T, testDB *testhelpers.TestDB, accountID uuid.UUID) context.Context {
	t.Helper()

	scope, err := testDB.DB.WithTenant(context.Background(), accountID)
	require.NoError(t, err, "Failed to acquire tenant scope")
	t.Cleanup(scope.Close)

	return database.SetTenantScope(context.Background(), scope)
}

func Test_ClientRepository_RoundTrip(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	repo := repositories.NewClientRepository()

	client := &models.Client{
		AccountID:  accountID,
		OwnerEmail: "vet@example.com",
		Name:       "Sarah Pemberton",
		Phone:      "07700 900123",
	}
	require.NoError(t, repo.Create(ctx, client))
	require.NotEqual(t, uuid.Nil, client.ID)
	assert.False(t, client.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Pemberton", got.Name)
	assert.Equal(t, "07700 900123", got.Phone)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func Test_Repositories_TenantIsolation(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := repositories.NewClientRepository()

	accountA := uuid.New()
	ctxA := tenantContext(t, testDB, accountA)
	client := &models.Client{AccountID: accountA, OwnerEmail: "a@example.com", Name: "Visible to A"}
	require.NoError(t, repo.Create(ctxA, client))

	accountB := uuid.New()
	ctxB := tenantContext(t, testDB, accountB)

	list, err := repo.List(ctxB)
	require.NoError(t, err)
	assert.Empty(t, list, "Account B must not see account A's clients")

	_, err = repo.GetByID(ctxB, client.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Row-level security must hide foreign rows")
}

func Test_HorseRepository_ListByClient(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	clientRepo := repositories.NewClientRepository()
	horseRepo := repositories.NewHorseRepository()

	owner := &models.Client{AccountID: accountID, OwnerEmail: "vet@example.com", Name: "Owner"}
	require.NoError(t, clientRepo.Create(ctx, owner))

	for _, name := range []string{"Copper", "Willow"} {
		horse := &models.Horse{
			AccountID:  accountID,
			OwnerEmail: "vet@example.com",
			Name:       name,
			ClientID:   &owner.ID,
		}
		require.NoError(t, horseRepo.Create(ctx, horse))
	}
	unlinked := &models.Horse{AccountID: accountID, OwnerEmail: "vet@example.com", Name: "Stray"}
	require.NoError(t, horseRepo.Create(ctx, unlinked))

	byClient, err := horseRepo.ListByClient(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	all, err := horseRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func Test_AppointmentRepository_CompleteBefore(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	repo := repositories.NewAppointmentRepository()

	appointments := []struct {
		date   string
		status string
	}{
		{"2023-01-10", models.StatusScheduled},
		{"2023-02-20", models.StatusScheduled},
		{"2023-01-15", models.StatusCancelled},
		{"2024-01-01", models.StatusScheduled},
		{"2024-06-01", models.StatusScheduled},
	}
	for _, a := range appointments {
		require.NoError(t, repo.Create(ctx, &models.Appointment{
			AccountID:  accountID,
			OwnerEmail: "vet@example.com",
			Date:       a.date,
			Status:     a.status,
		}))
	}

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	// Everything dated on or before the cutoff flips to completed, whatever
	// its prior status; the future appointment is left alone.
	updated, err := repo.CompleteBefore(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	for _, appt := range list {
		if appt.Date <= "2024-01-01" {
			assert.Equal(t, models.StatusCompleted, appt.Status, "date %s", appt.Date)
		} else {
			assert.Equal(t, models.StatusScheduled, appt.Status, "date %s", appt.Date)
		}
	}
}

func Test_AppointmentRepository_HorseIDsRoundTrip(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	repo := repositories.NewAppointmentRepository()
	horseA, horseB := uuid.New(), uuid.New()

	appt := &models.Appointment{
		AccountID:  accountID,
		OwnerEmail: "vet@example.com",
		Date:       "2024-03-05",
		TimeOfDay:  "09:30",
		HorseIDs:   []uuid.UUID{horseA, horseB},
		Status:     models.StatusScheduled,
	}
	require.NoError(t, repo.Create(ctx, appt))

	got, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", got.Date)
	assert.Equal(t, "09:30", got.TimeOfDay)
	assert.Equal(t, []uuid.UUID{horseA, horseB}, got.HorseIDs)
}

func Test_SettingsRepository_Upsert(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	repo := repositories.NewSettingsRepository()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, &models.Settings{
		AccountID:    accountID,
		OwnerEmail:   "vet@example.com",
		BusinessName: "Pemberton Equine Physio",
	}))
	require.NoError(t, repo.Upsert(ctx, &models.Settings{
		AccountID:    accountID,
		OwnerEmail:   "vet@example.com",
		BusinessName: "Pemberton Equine Physiotherapy",
		Phone:        "07700 900456",
	}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pemberton Equine Physiotherapy", got.BusinessName)
	assert.Equal(t, "07700 900456", got.Phone)
}

func Test_TreatmentRepository_CreatedAtStamping(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	repo := repositories.NewTreatmentRepository()

	// An imported historical treatment keeps its source timestamp.
	imported := &models.Treatment{
		AccountID:  accountID,
		OwnerEmail: "vet@example.com",
		Status:     models.StatusCompleted,
		CreatedAt:  time.Date(2021, 8, 15, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, imported))
	assert.True(t, imported.CreatedAt.Equal(time.Date(2021, 8, 15, 9, 30, 0, 0, time.UTC)),
		"created_at = %v", imported.CreatedAt)

	// A live treatment without a timestamp gets stamped on write.
	live := &models.Treatment{
		AccountID:  accountID,
		OwnerEmail: "vet@example.com",
		Status:     models.StatusCompleted,
	}
	require.NoError(t, repo.Create(ctx, live))
	assert.WithinDuration(t, time.Now(), live.CreatedAt, time.Minute)
}

func Test_Repositories_DeleteAll(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	accountID := uuid.New()
	ctx := tenantContext(t, testDB, accountID)

	clientRepo := repositories.NewClientRepository()
	horseRepo := repositories.NewHorseRepository()
	treatmentRepo := repositories.NewTreatmentRepository()

	owner := &models.Client{AccountID: accountID, OwnerEmail: "vet@example.com", Name: "Owner"}
	require.NoError(t, clientRepo.Create(ctx, owner))

	horse := &models.Horse{AccountID: accountID, OwnerEmail: "vet@example.com", Name: "Copper", ClientID: &owner.ID}
	require.NoError(t, horseRepo.Create(ctx, horse))

	require.NoError(t, treatmentRepo.Create(ctx, &models.Treatment{
		AccountID:      accountID,
		OwnerEmail:     "vet@example.com",
		HorseID:        &horse.ID,
		TreatmentTypes: []string{"massage"},
		Status:         models.StatusCompleted,
	}))

	// Leaf-first, matching the admin wipe order.
	deleted, err := treatmentRepo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = horseRepo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = clientRepo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	list, err := clientRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
