package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tableside/pos-auth/keycloak"
)

func TestIndexHandler(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "ok", body["status"])
		require.Equal(t, "/auth/login", body["login"])
		require.NotContains(t, body, "user")
	})

	t.Run("authenticated", func(t *testing.T) {
		f := newServerFixture(t)
		f.validClaims(testAccessToken, "server")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: testAccessToken})
		rec := f.do(req)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "sam.waiter@example.com", body["user"])
	})
}

func TestUserInfoHandler(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/auth/userinfo", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("proxies the IdP profile", func(t *testing.T) {
		f := newServerFixture(t)
		f.creds.userInfoFn = func(ctx context.Context, accessToken string) (*keycloak.UserInfo, error) {
			require.Equal(t, testAccessToken, accessToken)
			return &keycloak.UserInfo{Subject: "user-1", Email: "sam.waiter@example.com", VenueID: "venue-9"}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/auth/userinfo", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: testAccessToken})
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)

		var info keycloak.UserInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
		require.Equal(t, "user-1", info.Subject)
		require.Equal(t, "venue-9", info.VenueID)
	})

	t.Run("IdP failure maps to bad gateway", func(t *testing.T) {
		f := newServerFixture(t)
		f.creds.userInfoFn = func(ctx context.Context, accessToken string) (*keycloak.UserInfo, error) {
			return nil, errors.New("userinfo request failed: 502")
		}

		req := httptest.NewRequest(http.MethodGet, "/auth/userinfo", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: testAccessToken})
		rec := f.do(req)

		require.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestSectionHandler(t *testing.T) {
	f := newServerFixture(t)
	f.validClaims(testAccessToken, "manager", "server")

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: testAccessToken})
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Section string `json:"section"`
		User    struct {
			VenueID string   `json:"venueId"`
			Roles   []string `json:"roles"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "orders", body.Section)
	require.Equal(t, "venue-9", body.User.VenueID)
	require.Equal(t, []string{"manager", "server"}, body.User.Roles)
}

func TestNotFoundHandler(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/no-such-section", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
