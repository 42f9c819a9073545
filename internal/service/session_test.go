package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionService, *store.SessionStore, *[]SessionEvent) {
	t.Helper()
	st, err := store.NewSessionStore("")
	require.NoError(t, err)

	svc := NewSessionService(&fakeProvider{email: "ada@example.com", password: "secret1"}, st, log.NullLogger())
	events := &[]SessionEvent{}
	unsubscribe := svc.Subscribe(func(e SessionEvent) { *events = append(*events, e) })
	t.Cleanup(unsubscribe)
	return svc, st, events
}

func TestRestore_Anonymous(t *testing.T) {
	svc, _, events := newSessionFixture(t)
	assert.False(t, svc.Ready())

	svc.SetRoute(nav.Home)
	svc.Restore(context.Background())

	assert.True(t, svc.Ready())
	assert.Equal(t, domain.AuthAnonymous, svc.State())
	require.Len(t, *events, 1)
	assert.Equal(t, &nav.Intent{Target: nav.Login}, (*events)[0].Intent)
}

func TestRestore_PersistedSession(t *testing.T) {
	svc, st, events := newSessionFixture(t)
	require.NoError(t, st.SaveSession(&domain.SessionIdentity{UserID: "uid-1", Token: "id-token"}))

	svc.SetRoute(nav.Root)
	svc.Restore(context.Background())

	assert.Equal(t, domain.AuthAuthenticated, svc.State())
	assert.Equal(t, "uid-1", svc.Identity().UserID)
	assert.NotEmpty(t, svc.Identity().SessionID)
	require.Len(t, *events, 1)
	assert.Equal(t, &nav.Intent{Target: nav.Home, Replace: true}, (*events)[0].Intent)
}

func TestSignIn_Valid(t *testing.T) {
	svc, st, events := newSessionFixture(t)
	svc.Restore(context.Background())
	svc.SetRoute(nav.Login)

	identity, err := svc.SignIn(context.Background(), LoginForm{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, identity.SessionID)
	assert.Equal(t, domain.AuthAuthenticated, svc.State())

	token, ok := st.Token()
	require.True(t, ok)
	assert.Equal(t, "id-token", token)

	last := (*events)[len(*events)-1]
	assert.Equal(t, domain.AuthAuthenticated, last.State)
	assert.Equal(t, &nav.Intent{Target: nav.Home, Replace: true}, last.Intent)
	assert.Equal(t, nav.Authorized{Identity: identity}, svc.Guard(nav.Movies))
}

func TestSignIn_InvalidPassword(t *testing.T) {
	svc, st, events := newSessionFixture(t)
	svc.Restore(context.Background())
	before := len(*events)

	_, err := svc.SignIn(context.Background(), LoginForm{Email: "ada@example.com", Password: "wrong-pw"})
	var failure *AuthFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, MsgInvalidCredentials, failure.Message)

	assert.Equal(t, domain.AuthAnonymous, svc.State())
	assert.Len(t, *events, before, "no transition on rejection")
	_, ok := st.Token()
	assert.False(t, ok)
}

func TestSignIn_InvalidFormSkipsProvider(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	svc.Restore(context.Background())

	_, err := svc.SignIn(context.Background(), LoginForm{Email: "not-an-email", Password: "123"})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Email must be a valid email", verrs["email"])
	assert.Equal(t, "Password length must be at least 6 characters long", verrs["password"])
}

func TestSignOut(t *testing.T) {
	svc, st, events := newSessionFixture(t)
	svc.Restore(context.Background())
	_, err := svc.SignIn(context.Background(), LoginForm{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	svc.SetRoute(nav.Route{Page: nav.PageMovieDetails, Param: "550"})
	require.NoError(t, svc.SignOut(context.Background()))

	assert.Equal(t, domain.AuthAnonymous, svc.State())
	assert.Nil(t, svc.Identity())
	_, ok := st.Token()
	assert.False(t, ok)

	last := (*events)[len(*events)-1]
	assert.Equal(t, &nav.Intent{Target: nav.Login}, last.Intent)
	assert.Equal(t, nav.Redirect{Target: nav.Login}, svc.Guard(nav.Movies))
}

func TestRegister(t *testing.T) {
	provider := &fakeProvider{email: "ada@example.com", password: "secret1"}
	st, err := store.NewSessionStore("")
	require.NoError(t, err)
	svc := NewSessionService(provider, st, log.NullLogger())
	svc.Restore(context.Background())

	err = svc.Register(context.Background(), RegisterForm{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "cobol1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.signUps)
	assert.Equal(t, domain.AuthAnonymous, svc.State(), "registration does not sign in")

	err = svc.Register(context.Background(), RegisterForm{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret1",
	})
	var failure *AuthFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, MsgEmailInUse, failure.Message)

	err = svc.Register(context.Background(), RegisterForm{FirstName: "Al", Email: "al@example.com", Password: "secret1"})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "First Name length must be at least 3 characters long", verrs["first_name"])
	assert.Equal(t, "Last Name is not allowed to be empty", verrs["last_name"])
}

func TestUnsubscribe(t *testing.T) {
	st, err := store.NewSessionStore("")
	require.NoError(t, err)
	svc := NewSessionService(&fakeProvider{}, st, log.NullLogger())

	calls := 0
	unsubscribe := svc.Subscribe(func(SessionEvent) { calls++ })
	svc.Restore(context.Background())
	unsubscribe()
	_ = svc.SignOut(context.Background())

	assert.Equal(t, 1, calls)
}

func TestAuthMessage(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"auth/user-not-found", MsgInvalidCredentials},
		{"auth/wrong-password", MsgInvalidCredentials},
		{"auth/invalid-credential", MsgInvalidCredentials},
		{"auth/invalid-email", MsgInvalidEmail},
		{"auth/email-already-in-use", MsgEmailInUse},
		{"auth/weak-password", MsgWeakPassword},
		{"auth/too-many-requests", "Firebase: Error (auth/too-many-requests)."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &domain.AuthError{Code: tt.code, Message: "Firebase: Error (" + tt.code + ")."}
			assert.Equal(t, tt.want, AuthMessage(err))
		})
	}

	assert.Equal(t, "boom", AuthMessage(errors.New("boom")))
}
