package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, env *testEnv, email, password string) string {
	t.Helper()
	code, resp := env.do(t, http.MethodPost, "/login", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, code, resp.Message)
	data := decode[map[string]string](t, resp.Data)
	require.NotEmpty(t, data["token"])
	return data["token"]
}

func TestLogin(t *testing.T) {
	env := setupEnv(t)

	code, resp := env.do(t, http.MethodPost, "/login", gin.H{"email": adminEmail, "password": adminPassword}, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", resp.Message)
	data := decode[map[string]string](t, resp.Data)
	assert.Equal(t, "admin", data["user_role"])

	code, resp = env.do(t, http.MethodGet, "/admin/profile", nil, data["token"])
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, adminEmail, decode[map[string]interface{}](t, resp.Data)["email"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := setupEnv(t)

	code, resp := env.do(t, http.MethodPost, "/login", gin.H{"email": adminEmail, "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", resp.Message)

	code, resp = env.do(t, http.MethodPost, "/login", gin.H{"email": "nobody@example.com", "password": adminPassword}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", resp.Message)
}

func TestRegisterStaff(t *testing.T) {
	env := setupEnv(t)

	staff := gin.H{"name": "Waiter", "email": "waiter@example.com", "password": "password1", "role": "staff"}
	code, resp := env.do(t, http.MethodPost, "/admin/users", staff, env.admin)
	assert.Equal(t, http.StatusCreated, code, resp.Message)

	code, resp = env.do(t, http.MethodPost, "/admin/users", staff, env.admin)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "email already registered", resp.Message)

	token := login(t, env, "waiter@example.com", "password1")

	// staff run the floor but cannot manage accounts
	env.addTableAs(t, token, "Table 1", 4)

	code, _ = env.do(t, http.MethodPost, "/admin/users",
		gin.H{"name": "Other", "email": "other@example.com", "password": "password1", "role": "staff"}, token)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = env.do(t, http.MethodGet, "/admin/users", nil, token)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "insufficient role", resp.Message)
}

func TestRegisterValidation(t *testing.T) {
	env := setupEnv(t)

	code, _ := env.do(t, http.MethodPost, "/admin/users",
		gin.H{"name": "Waiter", "email": "waiter@example.com", "password": "short", "role": "staff"}, env.admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/admin/users",
		gin.H{"name": "Waiter", "email": "waiter@example.com", "password": "password1", "role": "chef"}, env.admin)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetAllUsers(t *testing.T) {
	env := setupEnv(t)

	code, resp := env.do(t, http.MethodGet, "/admin/users", nil, env.admin)
	assert.Equal(t, http.StatusOK, code)
	users := decode[[]map[string]interface{}](t, resp.Data)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "Password")
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setupEnv(t)
	token := login(t, env, adminEmail, adminPassword)

	code, _ := env.do(t, http.MethodPost, "/admin/logout", nil, token)
	assert.Equal(t, http.StatusOK, code)

	code, _ = env.do(t, http.MethodGet, "/admin/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, code)
}
