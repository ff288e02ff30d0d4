package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strato-io/strato/internal/auth"
	"github.com/strato-io/strato/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeystoneServer(t *testing.T, expiresIn time.Duration, issued *int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/v3/auth/tokens", request.URL.Path)
		require.Equal(t, http.MethodPost, request.Method)

		var body struct {
			Auth struct {
				Identity struct {
					Methods  []string `json:"methods"`
					Password struct {
						User struct {
							Name   string `json:"name"`
							Domain struct {
								Name string `json:"name"`
							} `json:"domain"`
							Password string `json:"password"`
						} `json:"user"`
					} `json:"password"`
				} `json:"identity"`
			} `json:"auth"`
		}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, []string{"password"}, body.Auth.Identity.Methods)
		assert.Equal(t, "demo", body.Auth.Identity.Password.User.Name)
		assert.Equal(t, "Default", body.Auth.Identity.Password.User.Domain.Name)

		if issued != nil {
			*issued++
		}

		writer.Header().Set("X-Subject-Token", "test-token")
		writer.WriteHeader(http.StatusCreated)

		response := map[string]interface{}{
			"token": map[string]interface{}{
				"expires_at": time.Now().Add(expiresIn).UTC().Format(time.RFC3339),
				"catalog": []map[string]interface{}{
					{
						"type": "network",
						"name": "neutron",
						"endpoints": []map[string]string{
							{"interface": "admin", "region": "RegionOne", "url": "http://admin.local:9696"},
							{"interface": "public", "region": "RegionOne", "url": "http://cloud.local:9696"},
							{"interface": "public", "region": "RegionTwo", "url": "http://two.local:9696"},
						},
					},
				},
			},
		}
		_ = json.NewEncoder(writer).Encode(response)
	}))
}

func TestKeystoneTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	issued := 0
	server := newKeystoneServer(t, time.Hour, &issued)

	defer server.Close()

	manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{
		AuthURL:  server.URL,
		Username: "demo",
		Password: "secret",
	})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	// A valid token is served from memory.
	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, 1, issued)
}

func TestKeystoneTokenManager_RenewsExpiringToken(t *testing.T) {
	t.Parallel()

	issued := 0
	server := newKeystoneServer(t, 10*time.Second, &issued)

	defer server.Close()

	manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{
		AuthURL:  server.URL,
		Username: "demo",
		Password: "secret",
	})

	// The token expires inside the renewal margin, so every call
	// re-authenticates.
	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	_, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, issued)
}

func TestKeystoneTokenManager_EndpointFor(t *testing.T) {
	t.Parallel()

	t.Run("picks public endpoint in region", func(t *testing.T) {
		t.Parallel()

		server := newKeystoneServer(t, time.Hour, nil)
		defer server.Close()

		manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{
			AuthURL:  server.URL,
			Username: "demo",
			Password: "secret",
			Region:   "RegionTwo",
		})

		endpoint, err := manager.EndpointFor(context.Background(), "network")
		require.NoError(t, err)
		assert.Equal(t, "http://two.local:9696", endpoint)
	})

	t.Run("no matching service", func(t *testing.T) {
		t.Parallel()

		server := newKeystoneServer(t, time.Hour, nil)
		defer server.Close()

		manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{
			AuthURL:  server.URL,
			Username: "demo",
			Password: "secret",
		})

		_, err := manager.EndpointFor(context.Background(), "block-storage")
		require.ErrorIs(t, err, constants.ErrNoCatalogEndpoint)
	})
}

func TestKeystoneTokenManager_AuthFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error": {"message": "The request you have made requires authentication.", "code": 401}}`))
	}))

	defer server.Close()

	manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{
		AuthURL:  server.URL,
		Username: "demo",
		Password: "wrong",
	})

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)
}

func TestKeystoneTokenManager_MissingCredentials(t *testing.T) {
	t.Parallel()

	manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{AuthURL: "http://cloud.local:5000"})

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, constants.ErrCredentialsMissing)
}

func TestStaticTokenManager_Lifecycle(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("fixed-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", token)

	require.ErrorIs(t, manager.RefreshToken(context.Background()), auth.ErrStaticTokenCannotRefresh)

	manager.SetToken("replaced", time.Now().Add(time.Hour))

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "replaced", token)
}
