package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmarkovs/codetutor/internal/api"
	"github.com/dmarkovs/codetutor/internal/session"
)

func profileFixture() *api.UserProfile {
	return &api.UserProfile{Username: "ana", TotalXP: 120, StreakDays: 3, SkillLevel: "beginner"}
}

type fakeController struct {
	loginEmail    string
	loginPassword string
	loginErr      error

	regArgs [4]string
	regErr  error

	logoutCalled  bool
	restoreErr    error
	authenticated bool
	errText       string
	cache         *session.Cache
}

func (f *fakeController) RestoreSession(context.Context) error { return f.restoreErr }

func (f *fakeController) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPassword = email, password
	return f.loginErr
}

func (f *fakeController) Register(_ context.Context, email, username, password, confirm string) error {
	f.regArgs = [4]string{email, username, password, confirm}
	return f.regErr
}

func (f *fakeController) Logout(context.Context) { f.logoutCalled = true }
func (f *fakeController) Authenticated() bool    { return f.authenticated }
func (f *fakeController) ErrorText() string      { return f.errText }

func (f *fakeController) Cache() *session.Cache {
	if f.cache == nil {
		f.cache = session.NewCache()
	}
	return f.cache
}

func stubInputs(t *testing.T, lines []string, passwords [][]byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return pw, nil
	}
}

func newTestApp(f *fakeController) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{ctrl: f, reader: bufio.NewReader(bytes.NewReader(nil)), out: &out}, &out
}

func TestLogin_Success(t *testing.T) {
	f := &fakeController{authenticated: true}
	app, out := newTestApp(f)
	stubInputs(t, []string{"ana@example.org"}, [][]byte{[]byte("secret")})

	require.NoError(t, app.Login(context.Background()))
	require.Equal(t, "ana@example.org", f.loginEmail)
	require.Equal(t, "secret", f.loginPassword)
	require.Contains(t, out.String(), "Signed in as")
}

func TestLogin_FailurePrintsErrorText(t *testing.T) {
	f := &fakeController{loginErr: errors.New("rejected"), errText: "Invalid credentials"}
	app, out := newTestApp(f)
	stubInputs(t, []string{"ana@example.org"}, [][]byte{[]byte("bad")})

	require.Error(t, app.Login(context.Background()))
	require.Contains(t, out.String(), "Invalid credentials")
}

func TestRegister_PassesAllFields(t *testing.T) {
	f := &fakeController{authenticated: true}
	app, _ := newTestApp(f)
	stubInputs(t,
		[]string{"ana@example.org", "ana"},
		[][]byte{[]byte("pw"), []byte("pw")},
	)

	require.NoError(t, app.Register(context.Background()))
	require.Equal(t, [4]string{"ana@example.org", "ana", "pw", "pw"}, f.regArgs)
}

func TestLogout(t *testing.T) {
	f := &fakeController{}
	app, out := newTestApp(f)

	app.Logout(context.Background())

	require.True(t, f.logoutCalled)
	require.Contains(t, out.String(), "Signed out.")
}

func TestWhoAmI_NotSignedIn(t *testing.T) {
	f := &fakeController{}
	app, out := newTestApp(f)

	require.NoError(t, app.WhoAmI(context.Background()))
	require.Contains(t, out.String(), "Not signed in.")
}

func TestWhoAmI_PrintsProfileSummary(t *testing.T) {
	f := &fakeController{authenticated: true}
	f.Cache().SetProfile(profileFixture())
	app, out := newTestApp(f)

	require.NoError(t, app.WhoAmI(context.Background()))
	require.Contains(t, out.String(), "ana · 120 xp · 3 day streak")
}

func TestGetSimpleText_TrimsAndHandlesEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(bytes.NewReader([]byte("  ana@example.org")))

	got, err := GetSimpleText(r, "Email", &out)
	require.NoError(t, err)
	require.Equal(t, "ana@example.org", got)
	require.Equal(t, "Email: ", out.String())
}
