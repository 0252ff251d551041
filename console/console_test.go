package console_test

import (
	"testing"

	"github.com/servly/admin-console/console"
	"github.com/servly/admin-console/guard"
	"github.com/stretchr/testify/require"
)

type stubSessions struct{ authed bool }

func (s *stubSessions) IsAuthenticated() bool { return s.authed }

func setupNav(authed bool) (*console.Navigator, *stubSessions) {
	sessions := &stubSessions{authed: authed}
	return console.NewNavigator(guard.New(sessions)), sessions
}

func TestNavigationAllowedWhenAuthenticated(t *testing.T) {
	nav, _ := setupNav(true)

	nav.To("/roles")
	require.Equal(t, "/roles", nav.Location())
	require.Empty(t, nav.From())
}

func TestNavigationDeniedWhenAnonymous(t *testing.T) {
	nav, _ := setupNav(false)

	nav.To("/roles")
	require.Equal(t, guard.SignInRoute, nav.Location())
	require.Equal(t, "/roles", nav.From())
}

func TestForceSignInPreservesInterruptedLocation(t *testing.T) {
	nav, _ := setupNav(true)
	nav.To("/serviceList")

	nav.ForceSignIn()
	require.Equal(t, guard.SignInRoute, nav.Location())
	require.Equal(t, "/serviceList", nav.From())
}

func TestForceSignInFromSignInKeepsEarlierFrom(t *testing.T) {
	nav, sessions := setupNav(false)
	nav.To("/roles") // denied, lands on sign-in with from=/roles
	sessions.authed = false

	nav.ForceSignIn()
	require.Equal(t, "/roles", nav.From())
}

func TestResumeReturnsToInterruptedLocation(t *testing.T) {
	nav, sessions := setupNav(true)
	nav.To("/serviceList")
	nav.ForceSignIn()

	sessions.authed = true
	nav.Resume()
	require.Equal(t, "/serviceList", nav.Location())
	require.Empty(t, nav.From())
}

func TestResumeDefaultsToRoot(t *testing.T) {
	nav, _ := setupNav(true)
	nav.Resume()
	require.Equal(t, "/", nav.Location())
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func TestFormValidateAndReset(t *testing.T) {
	form := console.NewForm(loginForm{})

	form.Set(func(v *loginForm) {
		v.Email = "not-an-email"
	})
	require.Error(t, form.Validate())
	errs := form.FieldErrors()
	require.Contains(t, errs, "Email")
	require.Contains(t, errs, "Password")

	form.Set(func(v *loginForm) {
		v.Email = "admin@example.com"
		v.Password = "secret"
	})
	require.NoError(t, form.Validate())
	require.Empty(t, form.FieldErrors())

	form.Reset()
	require.Equal(t, loginForm{}, form.Values())
	require.Empty(t, form.FieldErrors())
}

func TestDialogLifecycle(t *testing.T) {
	var d console.Dialog
	require.False(t, d.IsOpen())

	d.Open()
	require.True(t, d.IsOpen())

	d.Close()
	require.False(t, d.IsOpen())
}
