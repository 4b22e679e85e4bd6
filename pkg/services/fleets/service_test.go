package fleets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/jaunts-core/internal/testutil"
	"github.com/StricklySoft/jaunts-core/internal/testutil/fixtures"
	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// fakeStore records calls per method and returns canned results.
type fakeStore struct {
	stored    *models.Fleet
	all       []models.Fleet
	selectErr error
	writeErr  error

	inserts, selects, selectAlls, updates, deletes int
}

func (f *fakeStore) Insert(_ context.Context, fl models.Fleet) (models.Fleet, error) {
	f.inserts++
	if f.writeErr != nil {
		return models.Fleet{}, f.writeErr
	}
	fl.Version = 1
	return fl, nil
}

func (f *fakeStore) SelectByID(_ context.Context, _ uuid.UUID) (models.Fleet, error) {
	f.selects++
	if f.selectErr != nil {
		return models.Fleet{}, f.selectErr
	}
	if f.stored == nil {
		return models.Fleet{}, storage.ErrNotFound
	}
	return *f.stored, nil
}

func (f *fakeStore) SelectAll(_ context.Context) ([]models.Fleet, error) {
	f.selectAlls++
	return f.all, f.selectErr
}

func (f *fakeStore) Update(_ context.Context, fl models.Fleet) (models.Fleet, error) {
	f.updates++
	if f.writeErr != nil {
		return models.Fleet{}, f.writeErr
	}
	fl.Version++
	return fl, nil
}

func (f *fakeStore) Delete(_ context.Context, _ uuid.UUID) error {
	f.deletes++
	return f.writeErr
}

func (f *fakeStore) calls() int {
	return f.inserts + f.selects + f.selectAlls + f.updates + f.deletes
}

type harness struct {
	svc    *Service
	store  *fakeStore
	logger *testutil.RecordingLogger
	clock  *testutil.RecordingClock
}

func newHarness() *harness {
	h := &harness{
		store:  &fakeStore{},
		logger: &testutil.RecordingLogger{},
		clock:  testutil.NewRecordingClock(fixtures.Now),
	}
	h.svc = New(h.store, h.clock, h.logger)
	return h
}

const (
	validationOuter = "Invalid input, contact support."
	invalidFleet    = "Invalid Fleet. Please correct the errors and try again."
	dependencyOuter = "Fleet dependency error occurred, contact support."
	serviceOuter    = "Fleet service error occurred, contact support."
	failedStorage   = "Failed fleet storage error occurred, please contact support."
)

// =========================================================================
// Add
// =========================================================================

func TestAddFleet(t *testing.T) {
	t.Parallel()
	h := newHarness()
	in := fixtures.Fleet()
	in.Version = 0

	got, err := h.svc.AddFleet(context.Background(), in)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Version)
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, 1, h.store.inserts)
	assert.Zero(t, h.logger.Count())
}

func TestAddFleet_Nil(t *testing.T) {
	t.Parallel()
	h := newHarness()

	_, err := h.svc.AddFleet(context.Background(), nil)

	testutil.RequireFault(t, err, sserr.CodeValidation, validationOuter, sserr.CodeNullInput, "Fleet is null.")
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
	assert.Zero(t, h.store.calls())
	assert.Zero(t, h.clock.Calls())
}

func TestAddFleet_InvalidFields(t *testing.T) {
	t.Parallel()
	h := newHarness()
	in := &models.Fleet{Title: "  "}

	_, err := h.svc.AddFleet(context.Background(), in)

	testutil.RequireFault(t, err, sserr.CodeValidation, validationOuter, sserr.CodeInvalid, invalidFleet)
	testutil.RequireViolations(t, err, []testutil.Violation{
		{Parameter: "Id", Messages: []string{"Id is required"}},
		{Parameter: "ProviderId", Messages: []string{"Id is required"}},
		{Parameter: "Title", Messages: []string{"Text is required"}},
		{Parameter: "Description", Messages: []string{"Text is required"}},
		{Parameter: "PlateNumber", Messages: []string{"Text is required"}},
		{Parameter: "Seats", Messages: []string{"Seats must be positive"}},
		{Parameter: "Status", Messages: []string{"Status is invalid"}},
		{Parameter: "CreatedBy", Messages: []string{"Id is required"}},
		{Parameter: "UpdatedBy", Messages: []string{"Id is required"}},
		{Parameter: "CreatedDate", Messages: []string{"Date is required", "Date is not recent"}},
		{Parameter: "UpdatedDate", Messages: []string{"Date is required"}},
	})
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
	assert.Zero(t, h.store.calls())
}

func TestAddFleet_RevalidationIsDeterministic(t *testing.T) {
	t.Parallel()
	h := newHarness()
	in := fixtures.Fleet()
	in.UpdatedDate = in.CreatedDate.Add(time.Second)

	_, first := h.svc.AddFleet(context.Background(), in)
	_, second := h.svc.AddFleet(context.Background(), in)

	require.Error(t, first)
	assert.Equal(t, sserr.ViolationsOf(first).Map(), sserr.ViolationsOf(second).Map())
	assert.Equal(t, map[string][]string{"UpdatedDate": {"Date is not the same as CreatedDate"}},
		sserr.ViolationsOf(first).Map())
}

func TestAddFleet_NotRecent(t *testing.T) {
	t.Parallel()
	h := newHarness()
	in := fixtures.Fleet()
	in.CreatedDate = fixtures.Now.Add(-2 * time.Minute)
	in.UpdatedDate = in.CreatedDate

	_, err := h.svc.AddFleet(context.Background(), in)

	testutil.RequireViolations(t, err, []testutil.Violation{
		{Parameter: "CreatedDate", Messages: []string{"Date is not recent"}},
	})
	assert.Equal(t, 1, h.clock.Calls())
}

func TestAddFleet_StorageFaults(t *testing.T) {
	t.Parallel()
	raw := errors.New("driver")
	tests := []struct {
		name     string
		err      error
		outer    sserr.Code
		outerMsg string
		inner    sserr.Code
		innerMsg string
		level    string
	}{
		{"duplicate", storage.NewFault(storage.KindUniqueness, "op", raw),
			sserr.CodeDependencyValidation, validationOuter, sserr.CodeAlreadyExists,
			"Fleet with the same id already exists.", testutil.LevelError},
		{"unreachable", storage.NewFault(storage.KindConnectivity, "op", raw),
			sserr.CodeDependency, dependencyOuter, sserr.CodeFailedStorage, failedStorage, testutil.LevelCritical},
		{"write fault", storage.NewFault(storage.KindWrite, "op", raw),
			sserr.CodeDependency, dependencyOuter, sserr.CodeFailedStorage, failedStorage, testutil.LevelError},
		{"unexpected", raw,
			sserr.CodeService, serviceOuter, sserr.CodeFailedService,
			"Failed fleet service error occurred, contact support.", testutil.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness()
			h.store.writeErr = tt.err

			_, err := h.svc.AddFleet(context.Background(), fixtures.Fleet())

			testutil.RequireFault(t, err, tt.outer, tt.outerMsg, tt.inner, tt.innerMsg)
			testutil.RequireLoggedOnce(t, h.logger, tt.level, err)
			assert.ErrorIs(t, err, raw)
			assert.Equal(t, 1, h.store.inserts)
		})
	}
}

// =========================================================================
// Retrieve
// =========================================================================

func TestRetrieveAllFleets(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.store.all = []models.Fleet{*fixtures.Fleet(), *fixtures.Fleet()}

	got, err := h.svc.RetrieveAllFleets(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRetrieveAllFleets_Unreachable(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.store.selectErr = storage.NewFault(storage.KindConnectivity, "op", errors.New("refused"))

	_, err := h.svc.RetrieveAllFleets(context.Background())

	testutil.RequireFault(t, err, sserr.CodeDependency, dependencyOuter, sserr.CodeFailedStorage, failedStorage)
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelCritical, err)
}

func TestRetrieveFleetByID(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.store.stored = fixtures.Fleet()

	got, err := h.svc.RetrieveFleetByID(context.Background(), h.store.stored.ID)
	require.NoError(t, err)
	assert.Equal(t, h.store.stored, got)
	assert.Equal(t, 1, h.store.selects)
}

func TestRetrieveFleetByID_Unknown(t *testing.T) {
	t.Parallel()
	h := newHarness()
	id := uuid.New()

	_, err := h.svc.RetrieveFleetByID(context.Background(), id)

	testutil.RequireFault(t, err, sserr.CodeDependencyValidation, validationOuter,
		sserr.CodeNotFound, "Couldn't find record with id: "+id.String()+".")
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
}

// =========================================================================
// Modify
// =========================================================================

func storedAndModified() (stored, modified *models.Fleet) {
	stored = fixtures.Fleet()
	stored.CreatedDate = fixtures.Now.Add(-48 * time.Hour)
	stored.UpdatedDate = fixtures.Now.Add(-24 * time.Hour)

	m := *stored
	m.Title = "Toyota Quantum GL"
	m.UpdatedBy = uuid.New()
	m.UpdatedDate = fixtures.Now
	return stored, &m
}

func TestModifyFleet(t *testing.T) {
	t.Parallel()
	h := newHarness()
	stored, modified := storedAndModified()
	h.store.stored = stored

	got, err := h.svc.ModifyFleet(context.Background(), modified)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Quantum GL", got.Title)
	assert.EqualValues(t, 2, got.Version)
	assert.Equal(t, 1, h.store.selects)
	assert.Equal(t, 1, h.store.updates)
}

func TestModifyFleet_UpdatedDateNotMoved(t *testing.T) {
	t.Parallel()
	h := newHarness()

	_, err := h.svc.ModifyFleet(context.Background(), fixtures.Fleet())

	testutil.RequireViolations(t, err, []testutil.Violation{
		{Parameter: "UpdatedDate", Messages: []string{"Date is the same as CreatedDate"}},
	})
	assert.Zero(t, h.store.calls())
}

func TestModifyFleet_DisagreesWithStored(t *testing.T) {
	t.Parallel()
	h := newHarness()
	stored, modified := storedAndModified()
	h.store.stored = stored
	modified.CreatedDate = stored.CreatedDate.Add(-time.Hour)

	_, err := h.svc.ModifyFleet(context.Background(), modified)

	testutil.RequireFault(t, err, sserr.CodeValidation, validationOuter, sserr.CodeInvalid, invalidFleet)
	testutil.RequireViolations(t, err, []testutil.Violation{
		{Parameter: "CreatedDate", Messages: []string{"Date is not the same as CreatedDate"}},
	})
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
	assert.Equal(t, 1, h.store.selects)
	assert.Zero(t, h.store.updates)
}

func TestModifyFleet_StaleVersion(t *testing.T) {
	t.Parallel()
	h := newHarness()
	stored, modified := storedAndModified()
	h.store.stored = stored
	h.store.writeErr = storage.VersionConflict("sqlstore: update fleet")

	_, err := h.svc.ModifyFleet(context.Background(), modified)

	testutil.RequireFault(t, err, sserr.CodeDependency, dependencyOuter,
		sserr.CodeLocked, "Locked fleet record exception, please try again later.")
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
	assert.ErrorIs(t, err, storage.ErrVersionConflict)
}

func TestModifyFleet_Unknown(t *testing.T) {
	t.Parallel()
	h := newHarness()
	_, modified := storedAndModified()

	_, err := h.svc.ModifyFleet(context.Background(), modified)

	testutil.RequireErrorCode(t, err, sserr.CodeDependencyValidation)
	assert.Equal(t, 1, h.store.selects)
	assert.Zero(t, h.store.updates)
}

// =========================================================================
// Remove
// =========================================================================

func TestRemoveFleetByID(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.store.stored = fixtures.Fleet()

	got, err := h.svc.RemoveFleetByID(context.Background(), h.store.stored.ID)
	require.NoError(t, err)
	assert.Equal(t, h.store.stored.ID, got.ID)
	assert.Equal(t, 1, h.store.selects)
	assert.Equal(t, 1, h.store.deletes)
	assert.Zero(t, h.logger.Count())
}

func TestRemoveFleetByID_DefaultID(t *testing.T) {
	t.Parallel()
	h := newHarness()

	_, err := h.svc.RemoveFleetByID(context.Background(), uuid.Nil)

	testutil.RequireFault(t, err, sserr.CodeValidation, validationOuter, sserr.CodeInvalid, invalidFleet)
	assert.Equal(t, map[string][]string{"Id": {"Id is required"}}, sserr.ViolationsOf(err).Map())
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
	assert.Zero(t, h.store.calls())
}

func TestRemoveFleetByID_Unknown(t *testing.T) {
	t.Parallel()
	h := newHarness()
	id := uuid.New()

	_, err := h.svc.RemoveFleetByID(context.Background(), id)

	testutil.RequireFault(t, err, sserr.CodeDependencyValidation, validationOuter,
		sserr.CodeNotFound, "Couldn't find record with id: "+id.String()+".")
	testutil.RequireLoggedOnce(t, h.logger, testutil.LevelError, err)
	assert.Equal(t, 1, h.store.selects)
	assert.Zero(t, h.store.deletes)
}

func TestRemoveFleetByID_ExistenceReadFaults(t *testing.T) {
	t.Parallel()
	raw := errors.New("driver")
	tests := []struct {
		name  string
		err   error
		outer sserr.Code
		inner sserr.Code
		level string
	}{
		{"connectivity", storage.NewFault(storage.KindConnectivity, "op", raw),
			sserr.CodeDependency, sserr.CodeFailedStorage, testutil.LevelCritical},
		{"concurrency", storage.NewFault(storage.KindConcurrency, "op", raw),
			sserr.CodeDependency, sserr.CodeLocked, testutil.LevelError},
		{"unclassified", raw,
			sserr.CodeService, sserr.CodeFailedService, testutil.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness()
			h.store.selectErr = tt.err

			_, err := h.svc.RemoveFleetByID(context.Background(), uuid.New())

			testutil.RequireErrorCode(t, err, tt.outer)
			outer, _ := sserr.AsError(err)
			inner, ok := outer.Cause.(*sserr.Error)
			require.True(t, ok)
			assert.Equal(t, tt.inner, inner.Code)
			assert.ErrorIs(t, err, raw)
			testutil.RequireLoggedOnce(t, h.logger, tt.level, err)
			assert.Equal(t, 1, h.store.selects)
			assert.Zero(t, h.store.deletes)
		})
	}
}
