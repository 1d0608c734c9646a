package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second)
}

func TestLogin_Success(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ana@example.org", body["email"])
		require.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(Token{AccessToken: "T1", TokenType: "bearer"})
	})

	tok, err := c.Login(context.Background(), "ana@example.org", "secret")
	require.NoError(t, err)
	require.Equal(t, "T1", tok.AccessToken)
}

func TestLogin_RejectionCarriesDetail(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	})

	_, err := c.Login(context.Background(), "ana@example.org", "wrong")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Incorrect email or password", apiErr.Error())
}

func TestErrorWithoutDetail_FallsBackToStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Health(context.Background())
	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, "request failed with status 502", apiErr.Error())
}

func TestProfile_SendsBearerToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(UserProfile{Username: "ana", TotalXP: 120})
	})

	p, err := c.Profile(context.Background(), "T1")
	require.NoError(t, err)
	require.Equal(t, "ana", p.Username)
	require.Equal(t, 120, p.TotalXP)
}

func TestRegister_SendsPreferenceDefaults(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []string{"python"}, req.PreferredLanguages)
		require.Equal(t, "beginner", req.SkillLevel)
		require.Equal(t, "english", req.ExplanationLanguage)
		json.NewEncoder(w).Encode(Token{AccessToken: "T2"})
	})

	tok, err := c.Register(context.Background(), RegisterRequest{
		Email:               "ana@example.org",
		Username:            "ana",
		Password:            "secret",
		PreferredLanguages:  []string{"python"},
		SkillLevel:          "beginner",
		ExplanationLanguage: "english",
	})
	require.NoError(t, err)
	require.Equal(t, "T2", tok.AccessToken)
}

func TestStats_DecodesNestedPayload(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(DashboardStats{
			User:     UserSummary{Username: "ana", TotalXP: 120, StreakDays: 3},
			Activity: ActivityStats{SnippetsCreated: 5},
			Progress: ProgressStats{CurrentLevel: 2, NextLevelXP: 200},
		})
	})

	s, err := c.Stats(context.Background(), "T1")
	require.NoError(t, err)
	require.Equal(t, "ana", s.User.Username)
	require.Equal(t, 5, s.Activity.SnippetsCreated)
	require.Equal(t, 200, s.Progress.NextLevelXP)
}

func TestTransportFailure_MapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := NewHTTPClient(srv.URL, time.Second)

	err := c.Health(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnavailable))
}
