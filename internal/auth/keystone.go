package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// KeystoneConfig configures password authentication against an identity
// service.
type KeystoneConfig struct {
	// AuthURL is the identity endpoint, with or without the /v3 suffix.
	AuthURL string

	Username string
	Password string

	// ProjectName scopes the token; empty requests an unscoped token.
	ProjectName string

	// UserDomainName and ProjectDomainName default to "Default".
	UserDomainName    string
	ProjectDomainName string

	// Region filters catalog endpoints; empty matches any region.
	Region string

	// HTTPClient overrides the HTTP client used for token requests.
	HTTPClient *http.Client
}

// CatalogEndpoint is one endpoint entry from the token's service catalog.
type CatalogEndpoint struct {
	Interface string `json:"interface"`
	Region    string `json:"region"`
	URL       string `json:"url"`
}

// CatalogEntry is one service from the token's service catalog.
type CatalogEntry struct {
	Type      string            `json:"type"`
	Name      string            `json:"name"`
	Endpoints []CatalogEndpoint `json:"endpoints"`
}

// KeystoneTokenManager authenticates with the password grant and renews the
// token shortly before it expires. It is safe for concurrent use.
type KeystoneTokenManager struct {
	config     KeystoneConfig
	httpClient *http.Client

	mutex     sync.RWMutex
	token     string
	expiresAt time.Time
	catalog   []CatalogEntry
}

// NewKeystoneTokenManager creates a password-grant token manager.
func NewKeystoneTokenManager(config KeystoneConfig) *KeystoneTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	return &KeystoneTokenManager{
		config:     config,
		httpClient: httpClient,
	}
}

// GetToken returns a valid token, authenticating when the cached one is
// missing or about to expire.
func (m *KeystoneTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.RLock()
	token := m.token
	valid := token != "" && time.Now().Add(constants.TokenExpiryMargin).Before(m.expiresAt)
	m.mutex.RUnlock()

	if valid {
		return token, nil
	}

	if err := m.authenticate(ctx); err != nil {
		return "", err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.token, nil
}

// RefreshToken forces a re-authentication.
func (m *KeystoneTokenManager) RefreshToken(ctx context.Context) error {
	return m.authenticate(ctx)
}

// SetToken manually installs a token, e.g. one restored from CLI config.
func (m *KeystoneTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.token = token
	m.expiresAt = expiresAt
}

// TokenExpiry returns the current token's expiration time.
func (m *KeystoneTokenManager) TokenExpiry() time.Time {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.expiresAt
}

// EndpointFor returns the public catalog URL for a service type, filtered by
// the configured region. It authenticates first when no catalog is cached.
func (m *KeystoneTokenManager) EndpointFor(ctx context.Context, serviceType string) (string, error) {
	m.mutex.RLock()
	catalog := m.catalog
	m.mutex.RUnlock()

	if catalog == nil {
		if err := m.authenticate(ctx); err != nil {
			return "", err
		}

		m.mutex.RLock()
		catalog = m.catalog
		m.mutex.RUnlock()
	}

	for _, entry := range catalog {
		if entry.Type != serviceType {
			continue
		}

		for _, endpoint := range entry.Endpoints {
			if endpoint.Interface != "public" {
				continue
			}

			if m.config.Region != "" && endpoint.Region != m.config.Region {
				continue
			}

			return endpoint.URL, nil
		}
	}

	return "", fmt.Errorf("%w: service %q region %q",
		constants.ErrNoCatalogEndpoint, serviceType, m.config.Region)
}

func (m *KeystoneTokenManager) authenticate(ctx context.Context) error {
	if m.config.Username == "" || m.config.Password == "" {
		return constants.ErrCredentialsMissing
	}

	body, err := json.Marshal(m.buildAuthRequest())
	if err != nil {
		return fmt.Errorf("encoding auth request: %w", err)
	}

	tokenURL := strings.TrimSuffix(m.config.AuthURL, "/")
	if !strings.HasSuffix(tokenURL, "/v3") {
		tokenURL += "/v3"
	}

	tokenURL += "/auth/tokens"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating auth request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading auth response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authenticating: %w", strato.ParseErrorResponse(resp.StatusCode, respBody))
	}

	token := resp.Header.Get("X-Subject-Token")
	if token == "" {
		return constants.ErrNoTokenInResponse
	}

	var parsed struct {
		Token struct {
			ExpiresAt time.Time      `json:"expires_at"`
			Catalog   []CatalogEntry `json:"catalog"`
		} `json:"token"`
	}

	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("parsing auth response: %w", err)
	}

	m.mutex.Lock()
	m.token = token
	m.expiresAt = parsed.Token.ExpiresAt
	m.catalog = parsed.Token.Catalog
	m.mutex.Unlock()

	return nil
}

func (m *KeystoneTokenManager) buildAuthRequest() map[string]interface{} {
	userDomain := m.config.UserDomainName
	if userDomain == "" {
		userDomain = constants.DefaultDomainName
	}

	identity := map[string]interface{}{
		"methods": []string{"password"},
		"password": map[string]interface{}{
			"user": map[string]interface{}{
				"name":     m.config.Username,
				"domain":   map[string]string{"name": userDomain},
				"password": m.config.Password,
			},
		},
	}

	auth := map[string]interface{}{"identity": identity}

	if m.config.ProjectName != "" {
		projectDomain := m.config.ProjectDomainName
		if projectDomain == "" {
			projectDomain = constants.DefaultDomainName
		}

		auth["scope"] = map[string]interface{}{
			"project": map[string]interface{}{
				"name":   m.config.ProjectName,
				"domain": map[string]string{"name": projectDomain},
			},
		}
	}

	return map[string]interface{}{"auth": auth}
}
