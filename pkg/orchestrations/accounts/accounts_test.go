package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/jaunts-core/internal/testutil"
	"github.com/StricklySoft/jaunts-core/internal/testutil/fixtures"
	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

type fakeUsers struct {
	user *models.User
	err  error

	toggled []uuid.UUID
	signIns []string
}

func (f *fakeUsers) EnableOrDisableTwoFactor(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.toggled = append(f.toggled, id)
	return f.user, f.err
}

func (f *fakeUsers) Authenticate(_ context.Context, email, _ string) (*models.User, error) {
	f.signIns = append(f.signIns, email)
	return f.user, f.err
}

type fakeTokens struct {
	details *models.AccountDetails
	err     error

	got []*models.User
}

func (f *fakeTokens) AccountDetails(_ context.Context, u *models.User) (*models.AccountDetails, error) {
	f.got = append(f.got, u)
	return f.details, f.err
}

func TestEnableUserTwoFactor(t *testing.T) {
	t.Parallel()
	u := fixtures.User()
	u.TwoFactorEnabled = true
	want := &models.AccountDetails{UserID: u.ID, TwoFactorEnabled: true, Token: "signed"}
	us := &fakeUsers{user: u}
	ts := &fakeTokens{details: want}

	got, err := New(us, ts).EnableUserTwoFactor(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Same(t, want, got)
	assert.Equal(t, []uuid.UUID{u.ID}, us.toggled)
	require.Len(t, ts.got, 1)
	assert.Same(t, u, ts.got[0])
}

func TestEnableUserTwoFactor_UserFault(t *testing.T) {
	t.Parallel()
	logger := &testutil.RecordingLogger{}
	router := faults.NewRouter(faults.Entity{Name: "User"}, logger)
	fault := router.Route(context.Background(),
		storage.NewFault(storage.KindConnectivity, "postgres: select", errors.New("connection refused")))
	us := &fakeUsers{err: fault}
	ts := &fakeTokens{}

	got, err := New(us, ts).EnableUserTwoFactor(context.Background(), uuid.New())

	assert.Nil(t, got)
	assert.Same(t, fault, err)
	testutil.RequireErrorCode(t, err, sserr.CodeDependency)
	testutil.RequireLoggedOnce(t, logger, testutil.LevelCritical, fault)
	assert.Empty(t, ts.got, "token service must not run after a user fault")
}

func TestEnableUserTwoFactor_TokenFault(t *testing.T) {
	t.Parallel()
	logger := &testutil.RecordingLogger{}
	router := faults.NewRouter(faults.Entity{Name: "Token"}, logger)
	fault := router.Route(context.Background(), errors.New("hmac unavailable"))
	us := &fakeUsers{user: fixtures.User()}
	ts := &fakeTokens{err: fault}

	_, err := New(us, ts).EnableUserTwoFactor(context.Background(), us.user.ID)

	assert.Same(t, fault, err)
	testutil.RequireErrorCode(t, err, sserr.CodeService)
	testutil.RequireLoggedOnce(t, logger, testutil.LevelError, fault)
	assert.Len(t, us.toggled, 1)
}

func TestSignIn(t *testing.T) {
	t.Parallel()
	u := fixtures.User()
	want := &models.AccountDetails{UserID: u.ID, Token: "signed"}
	us := &fakeUsers{user: u}
	ts := &fakeTokens{details: want}

	got, err := New(us, ts).SignIn(context.Background(), Credentials{Email: u.Email, Password: fixtures.TestPassword})
	require.NoError(t, err)

	assert.Same(t, want, got)
	assert.Equal(t, []string{u.Email}, us.signIns)
	require.Len(t, ts.got, 1)
}

func TestSignIn_Rejected(t *testing.T) {
	t.Parallel()
	fault := sserr.New(sserr.CodeValidation, "User validation errors occurred, please try again.")
	us := &fakeUsers{err: fault}
	ts := &fakeTokens{}

	_, err := New(us, ts).SignIn(context.Background(), Credentials{Email: "x@jaunts.co.zw", Password: "wrong"})

	assert.Same(t, fault, err)
	assert.Empty(t, ts.got)
}
