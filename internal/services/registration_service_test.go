package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/pkg/apperrors"
)

func submitRequest(t *testing.T, env *testEnv, email string) *models.RegistrationRequest {
	t.Helper()
	request, err := env.registration.Submit(nil, &dto.RegisterRequest{
		Email:    email,
		Password: "Secret123",
		FullName: "Applicant",
		Company:  "Acme",
	})
	require.NoError(t, err)
	return request
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	env := newTestEnv(t)

	request := submitRequest(t, env, "new@example.com")

	assert.Equal(t, models.RegistrationStatusPending, request.Status)
	assert.True(t, strings.HasPrefix(request.PasswordHash, "$bcrypt-sha256$"))
	assert.True(t, env.hasher.Verify("Secret123", request.PasswordHash))
	assert.NotContains(t, request.PasswordHash, "Secret123")
}

func TestSubmitRejectsExistingAccountEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "taken@example.com", "Secret123", nil)

	_, err := env.registration.Submit(nil, &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "Secret123",
		FullName: "Applicant",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyRegistered)
}

func TestSubmitRejectsSecondPendingRequest(t *testing.T) {
	env := newTestEnv(t)
	submitRequest(t, env, "new@example.com")

	_, err := env.registration.Submit(nil, &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "Secret123",
		FullName: "Applicant",
	})
	assert.ErrorIs(t, err, apperrors.ErrPendingRequestExists)
}

func TestSubmitAllowsResubmitAfterRejection(t *testing.T) {
	env := newTestEnv(t)
	request := submitRequest(t, env, "retry@example.com")

	_, err := env.registration.Reject(nil, request.ID, 1, "incomplete application")
	require.NoError(t, err)

	_, err = env.registration.Submit(nil, &dto.RegisterRequest{
		Email:    "retry@example.com",
		Password: "Secret123",
		FullName: "Applicant",
	})
	assert.NoError(t, err)
}

func TestSubmitWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no digit", "Passwords"},
		{"no letter", "12345678"},
		{"too long", strings.Repeat("a", 70) + "1b" + strings.Repeat("c", 10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.registration.Submit(nil, &dto.RegisterRequest{
				Email:    "weak@example.com",
				Password: tc.password,
				FullName: "Applicant",
			})
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
		})
	}
}

func TestApproveCreatesAccountThatCanLogin(t *testing.T) {
	env := newTestEnv(t)
	request := submitRequest(t, env, "new@example.com")

	reviewed, err := env.registration.Approve(nil, request.ID, 7, &dto.ApproveRegistrationRequest{
		Notes: "looks good",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RegistrationStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, uint(7), *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.NotNil(t, reviewed.AccountID)
	assert.Empty(t, reviewed.PasswordHash)

	// The password captured at submission works against the new account.
	resp, err := env.auth.Login(nil, "new@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.User.Email)

	select {
	case to := <-env.email.approved:
		assert.Equal(t, "new@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("approval notification was not sent")
	}
}

func TestApproveAssignsTenant(t *testing.T) {
	env := newTestEnv(t)
	tenant := &models.Tenant{Name: "Acme", Status: models.TenantStatusActive, MaxUsers: 5}
	require.NoError(t, env.tenants.Create(nil, tenant))

	request := submitRequest(t, env, "new@acme.test")
	reviewed, err := env.registration.Approve(nil, request.ID, 1, &dto.ApproveRegistrationRequest{
		TenantID: &tenant.ID,
	})
	require.NoError(t, err)

	account, err := env.accounts.FindByID(nil, *reviewed.AccountID)
	require.NoError(t, err)
	require.NotNil(t, account.TenantID)
	assert.Equal(t, tenant.ID, *account.TenantID)

	// The issued token carries the tenant binding.
	resp, err := env.auth.Login(nil, "new@acme.test", "Secret123")
	require.NoError(t, err)
	got, ok := env.tokens.TenantID(resp.AccessToken)
	require.True(t, ok)
	assert.Equal(t, tenant.ID, got)
}

func TestApproveEnforcesTenantCapacity(t *testing.T) {
	env := newTestEnv(t)
	tenant := &models.Tenant{Name: "Acme", Status: models.TenantStatusActive, MaxUsers: 1}
	require.NoError(t, env.tenants.Create(nil, tenant))
	env.seedAccount(t, "existing@acme.test", "Secret123", func(a *models.Account) {
		a.TenantID = &tenant.ID
	})

	request := submitRequest(t, env, "overflow@acme.test")
	_, err := env.registration.Approve(nil, request.ID, 1, &dto.ApproveRegistrationRequest{
		TenantID: &tenant.ID,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLimitExceeded, appErr.Code)

	// The request stays pending so it can be approved into another tenant.
	stored, err := env.requests.FindByID(nil, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusPending, stored.Status)
}

func TestApproveResolvedRequest(t *testing.T) {
	env := newTestEnv(t)
	request := submitRequest(t, env, "new@example.com")

	_, err := env.registration.Approve(nil, request.ID, 1, &dto.ApproveRegistrationRequest{})
	require.NoError(t, err)

	_, err = env.registration.Approve(nil, request.ID, 1, &dto.ApproveRegistrationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyResolved)

	_, err = env.registration.Reject(nil, request.ID, 1, "")
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyResolved)
}

func TestApproveUnknownRequest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.registration.Approve(nil, 999, 1, &dto.ApproveRegistrationRequest{})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestRejectLeavesNoAccount(t *testing.T) {
	env := newTestEnv(t)
	request := submitRequest(t, env, "new@example.com")

	rejected, err := env.registration.Reject(nil, request.ID, 3, "not a fit")
	require.NoError(t, err)

	assert.Equal(t, models.RegistrationStatusRejected, rejected.Status)
	assert.Equal(t, "not a fit", rejected.ReviewNotes)
	assert.Empty(t, rejected.PasswordHash)
	assert.Nil(t, rejected.AccountID)

	_, err = env.auth.Login(nil, "new@example.com", "Secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	select {
	case to := <-env.email.rejected:
		assert.Equal(t, "new@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("rejection notification was not sent")
	}
}

func TestUpdateNotesOnResolvedRequest(t *testing.T) {
	env := newTestEnv(t)
	request := submitRequest(t, env, "new@example.com")
	_, err := env.registration.Reject(nil, request.ID, 1, "initial")
	require.NoError(t, err)

	updated, err := env.registration.UpdateNotes(nil, request.ID, "revised after appeal")
	require.NoError(t, err)

	assert.Equal(t, "revised after appeal", updated.ReviewNotes)
	assert.Equal(t, models.RegistrationStatusRejected, updated.Status)
}

func TestListByStatus(t *testing.T) {
	env := newTestEnv(t)
	first := submitRequest(t, env, "a@example.com")
	submitRequest(t, env, "b@example.com")

	_, err := env.registration.Reject(nil, first.ID, 1, "")
	require.NoError(t, err)

	pending, err := env.registration.List(nil, models.RegistrationStatusPending, 1, 50)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b@example.com", pending[0].Email)

	all, err := env.registration.List(nil, "", 1, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
