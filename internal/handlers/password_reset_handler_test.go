package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ecotrack/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedCode(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	var row models.PasswordResetCode
	require.NoError(t, env.db.Where("email = ?", email).Order("created_at DESC").First(&row).Error)
	return row.Code
}

func TestPasswordResetEndpoints_FullScenario(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(t, "alice", models.RoleUser)

	// Request a code.
	rec := env.request(http.MethodPost, "/api/auth/password/request-reset", "",
		fmt.Sprintf(`{"email":%q}`, user.Email))
	requireStatus(t, rec, http.StatusOK)
	body := decode(t, rec.Body.Bytes())
	assert.Equal(t, user.Email, body["email"])

	code := issuedCode(t, env, user.Email)
	require.Len(t, code, 4)

	// Wrong code fails with 400.
	wrong := "9999"
	if code == wrong {
		wrong = "0000"
	}
	rec = env.request(http.MethodPost, "/api/auth/password/verify-code", "",
		fmt.Sprintf(`{"email":%q,"code":%q}`, user.Email, wrong))
	requireStatus(t, rec, http.StatusBadRequest)

	// Right code verifies.
	rec = env.request(http.MethodPost, "/api/auth/password/verify-code", "",
		fmt.Sprintf(`{"email":%q,"code":%q}`, user.Email, code))
	requireStatus(t, rec, http.StatusOK)

	// Password change with the verified code.
	rec = env.request(http.MethodPost, "/api/auth/password/reset", "",
		fmt.Sprintf(`{"email":%q,"code":%q,"password":"new-password-1","password_confirmation":"new-password-1"}`, user.Email, code))
	requireStatus(t, rec, http.StatusOK)

	// Login works with the new password.
	rec = env.request(http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"new-password-1"}`, user.Email))
	requireStatus(t, rec, http.StatusOK)

	// The code is consumed: a second reset fails.
	rec = env.request(http.MethodPost, "/api/auth/password/reset", "",
		fmt.Sprintf(`{"email":%q,"code":%q,"password":"new-password-2","password_confirmation":"new-password-2"}`, user.Email, code))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestRequestResetEndpoint_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(http.MethodPost, "/api/auth/password/request-reset", "",
		`{"email":"nobody@example.com"}`)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestRequestResetEndpoint_MalformedEmail(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(http.MethodPost, "/api/auth/password/request-reset", "",
		`{"email":"not-an-email"}`)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestResetPasswordEndpoint_ConfirmationMismatch(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(t, "alice", models.RoleUser)

	rec := env.request(http.MethodPost, "/api/auth/password/reset", "",
		fmt.Sprintf(`{"email":%q,"code":"1234","password":"new-password-1","password_confirmation":"different"}`, user.Email))
	requireStatus(t, rec, http.StatusUnprocessableEntity)
	body := decode(t, rec.Body.Bytes())
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "passwordconfirmation")
}

func TestResetPasswordEndpoint_WithoutVerification(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(t, "alice", models.RoleUser)

	rec := env.request(http.MethodPost, "/api/auth/password/request-reset", "",
		fmt.Sprintf(`{"email":%q}`, user.Email))
	requireStatus(t, rec, http.StatusOK)
	code := issuedCode(t, env, user.Email)

	rec = env.request(http.MethodPost, "/api/auth/password/reset", "",
		fmt.Sprintf(`{"email":%q,"code":%q,"password":"new-password-1","password_confirmation":"new-password-1"}`, user.Email, code))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestVerifyCodeEndpoint_ValidatesShape(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/api/auth/password/verify-code", "",
		`{"email":"a@b.com","code":"12"}`)
	requireStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.request(http.MethodPost, "/api/auth/password/verify-code", "",
		`{"email":"a@b.com","code":"abcd"}`)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
}
