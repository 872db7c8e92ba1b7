package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redpulse/client-go/demo"
	"github.com/redpulse/client-go/enums"
	"github.com/redpulse/client-go/identity"
	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/store"
)

type fakeProbe struct {
	reachable bool
	calls     int
}

func (f *fakeProbe) QuickCheck(ctx context.Context) bool {
	f.calls++
	return f.reachable
}

type fakeIdentity struct {
	session    *models.Session
	signInErr  error
	signOutErr error
	hang       bool
}

func (f *fakeIdentity) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.session, f.signInErr
}

func (f *fakeIdentity) SignOut(ctx context.Context) error {
	if f.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.signOutErr
}

type fakeSignUp struct {
	err     error
	calls   int
	payload map[string]interface{}
}

func (f *fakeSignUp) SignUpRemote(ctx context.Context, payload map[string]interface{}) ([]byte, error) {
	f.calls++
	f.payload = payload
	return []byte(`{}`), f.err
}

func newTestGateway(s store.Store, probe QuickChecker, idsvc IdentityService, signup SignUpSender) *Gateway {
	emulator := demo.NewEmulator(s, demo.Config{DisableLatency: true})
	return NewGateway(Config{
		SignInTimeout:  100 * time.Millisecond,
		SignOutTimeout: 100 * time.Millisecond,
		SignUpTimeout:  100 * time.Millisecond,
	}, s, probe, idsvc, emulator, signup)
}

func TestSignInDemoAccount(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	probe := &fakeProbe{}
	g := newTestGateway(s, probe, &fakeIdentity{}, &fakeSignUp{})

	result, err := g.SignIn(ctx, "patient@demo.com", demo.DemoPassword)
	require.NoError(t, err)

	assert.Equal(t, enums.SessionDemo, result.Kind)
	assert.False(t, result.RequiresDemoMode)
	require.NotNil(t, result.Session)
	assert.Equal(t, "patient@demo.com", result.Session.User.Email)

	// Demo accounts never touch the network.
	assert.Zero(t, probe.calls)
}

func TestSignInDemoAccountWrongPassword(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(store.NewMemory(), &fakeProbe{}, &fakeIdentity{}, &fakeSignUp{})

	_, err := g.SignIn(ctx, "donor@demo.com", "hunter2")
	require.ErrorIs(t, err, ErrIncorrectDemoPassword)
	assert.Contains(t, err.Error(), "Demo123!")
}

func TestSignInUnreachableBackendSuggestsDemo(t *testing.T) {
	ctx := context.Background()
	idsvc := &fakeIdentity{session: &models.Session{AccessToken: "t"}}
	g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: false}, idsvc, &fakeSignUp{})

	result, err := g.SignIn(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	assert.True(t, result.RequiresDemoMode)
	assert.Nil(t, result.Session)
	assert.Contains(t, result.Message, "demo")
}

func TestSignInRealAccountSuccess(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	idsvc := &fakeIdentity{session: &models.Session{
		AccessToken: "real-token",
		User:        models.SessionUser{ID: "u1", Email: "user@example.com"},
	}}
	g := newTestGateway(s, &fakeProbe{reachable: true}, idsvc, &fakeSignUp{})

	result, err := g.SignIn(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, enums.SessionReal, result.Kind)
	assert.False(t, result.RequiresDemoMode)

	stay, err := s.Get(ctx, store.KeyStayLoggedIn)
	require.NoError(t, err)
	assert.Equal(t, "true", stay)
	token, err := s.Get(ctx, store.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "real-token", token)
}

func TestSignInRealAccountClearsDemoState(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	emulator := demo.NewEmulator(s, demo.Config{DisableLatency: true})
	_, err := emulator.Authenticate(ctx, "donor@demo.com", demo.DemoPassword)
	require.NoError(t, err)

	idsvc := &fakeIdentity{session: &models.Session{AccessToken: "real-token"}}
	g := newTestGateway(s, &fakeProbe{reachable: true}, idsvc, &fakeSignUp{})

	_, err = g.SignIn(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	_, err = s.Get(ctx, store.KeyDemoSession)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
	_, err = s.Get(ctx, store.KeyDemoProfile)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestSignInFailureClassification(t *testing.T) {
	tests := []struct {
		name        string
		signInErr   error
		hang        bool
		wantErr     error
		wantSuggest bool
	}{
		{
			name:      "invalid credentials stay hard",
			signInErr: identity.ErrInvalidCredentials,
			wantErr:   ErrInvalidCredentials,
		},
		{
			name:      "unverified email stays hard",
			signInErr: identity.ErrEmailNotConfirmed,
			wantErr:   ErrEmailNotVerified,
		},
		{
			name:        "logins disabled degrades",
			signInErr:   identity.ErrLoginsDisabled,
			wantSuggest: true,
		},
		{
			name:        "opaque failure degrades",
			signInErr:   errors.New("tls handshake failure"),
			wantSuggest: true,
		},
		{
			name:        "hung sign-in degrades at the race boundary",
			hang:        true,
			wantSuggest: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idsvc := &fakeIdentity{signInErr: tt.signInErr, hang: tt.hang}
			g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: true}, idsvc, &fakeSignUp{})

			result, err := g.SignIn(context.Background(), "user@example.com", "password123")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, result.RequiresDemoMode)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestSignUpReservedEmailRejectedBeforeProbe(t *testing.T) {
	ctx := context.Background()
	probe := &fakeProbe{reachable: true}
	signup := &fakeSignUp{}
	g := newTestGateway(store.NewMemory(), probe, &fakeIdentity{}, signup)

	err := g.SignUp(ctx, SignUpInput{
		Email:    "hospital@demo.com",
		Password: "password123",
		FullName: "Someone Else",
	})
	require.ErrorIs(t, err, ErrReservedDemoEmail)
	assert.Zero(t, probe.calls)
	assert.Zero(t, signup.calls)
}

func TestSignUpValidation(t *testing.T) {
	g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: true}, &fakeIdentity{}, &fakeSignUp{})

	tests := []struct {
		name  string
		input SignUpInput
	}{
		{"missing email", SignUpInput{Password: "password123", FullName: "A B"}},
		{"malformed email", SignUpInput{Email: "not-an-email", Password: "password123", FullName: "A B"}},
		{"short password", SignUpInput{Email: "a@b.com", Password: "short", FullName: "A B"}},
		{"missing name", SignUpInput{Email: "a@b.com", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.SignUp(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidSignUpInput)
		})
	}
}

func TestSignUpOfflineBackend(t *testing.T) {
	g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: false}, &fakeIdentity{}, &fakeSignUp{})

	err := g.SignUp(context.Background(), SignUpInput{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})
	assert.ErrorIs(t, err, ErrRegistrationOffline)
}

func TestSignUpSendsFullPayload(t *testing.T) {
	signup := &fakeSignUp{}
	g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: true}, &fakeIdentity{}, signup)

	err := g.SignUp(context.Background(), SignUpInput{
		Email:     "new@example.com",
		Password:  "password123",
		FullName:  "New User",
		BloodType: "AB-",
		City:      "Pune",
	})
	require.NoError(t, err)
	require.Equal(t, 1, signup.calls)
	assert.Equal(t, "new@example.com", signup.payload["email"])
	assert.Equal(t, "AB-", signup.payload["bloodType"])
	assert.Equal(t, "Pune", signup.payload["city"])
}

func TestSignUpFailureClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"duplicate", errors.New("HTTP error: user already registered"), ErrDuplicateAccount},
		{"duplicate variant", errors.New("this email has already been registered"), ErrDuplicateAccount},
		{"disabled", errors.New("signup is disabled"), ErrRegistrationDisabled},
		{"invalid email", errors.New("invalid email format"), ErrInvalidSignUpInput},
		{"weak password", errors.New("password should be stronger"), ErrInvalidSignUpInput},
		{"network", errors.New("dial tcp: connection refused"), ErrRegistrationNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signup := &fakeSignUp{err: tt.err}
			g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: true}, &fakeIdentity{}, signup)

			err := g.SignUp(context.Background(), SignUpInput{
				Email:    "new@example.com",
				Password: "password123",
				FullName: "New User",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignUpOpaqueFailureWrapped(t *testing.T) {
	signup := &fakeSignUp{err: errors.New("quota exceeded")}
	g := newTestGateway(store.NewMemory(), &fakeProbe{reachable: true}, &fakeIdentity{}, signup)

	err := g.SignUp(context.Background(), SignUpInput{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("registration failed: %s", "quota exceeded"), err.Error())
}

func TestSignOutAlwaysClearsLocalState(t *testing.T) {
	tests := []struct {
		name  string
		idsvc *fakeIdentity
	}{
		{"remote succeeds", &fakeIdentity{}},
		{"remote fails", &fakeIdentity{signOutErr: errors.New("boom")}},
		{"remote hangs", &fakeIdentity{hang: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := store.NewMemory()
			for _, key := range []string{store.KeyDemoSession, store.KeyDemoProfile, store.KeyStayLoggedIn, store.KeyAccessToken} {
				require.NoError(t, s.Set(ctx, key, "x"))
			}

			g := newTestGateway(s, &fakeProbe{}, tt.idsvc, &fakeSignUp{})
			require.NoError(t, g.SignOut(ctx))

			for _, key := range []string{store.KeyDemoSession, store.KeyDemoProfile, store.KeyStayLoggedIn, store.KeyAccessToken} {
				_, err := s.Get(ctx, key)
				assert.ErrorIs(t, err, store.ErrKeyNotFound, key)
			}
		})
	}
}
