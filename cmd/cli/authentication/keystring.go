package authentication

// keystring.go keeps the bearer token in the OS keyring, on the client side.
import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "webtoonhub-cli"
	tokenKey    = "auth_token"
)

// ErrNoCredentials means nobody is logged in on this machine
var ErrNoCredentials = errors.New("no stored credentials")

type StoredCredentials struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// KeyringStore persists one set of credentials per OS user and API host, so a
// token issued by one server is never sent to another.
type KeyringStore struct {
	service string
}

func NewKeyringStore(apiURL string) *KeyringStore {
	return &KeyringStore{service: ServiceFor(apiURL)}
}

// ServiceFor names the keyring entry for an API base URL, e.g.
// "webtoonhub-cli@localhost:8000".
func ServiceFor(apiURL string) string {
	host := ""
	if u, err := url.Parse(strings.TrimSpace(apiURL)); err == nil {
		host = u.Host
	}
	if host == "" {
		return serviceName
	}
	return serviceName + "@" + strings.ToLower(host)
}

func (s *KeyringStore) Save(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(s.service, tokenKey, string(data))
}

func (s *KeyringStore) Load() (*StoredCredentials, error) {
	value, err := keyring.Get(s.service, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoCredentials
		}
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	if creds.AccessToken == "" {
		return nil, ErrNoCredentials
	}
	return &creds, nil
}

// Delete is a no-op when nothing is stored
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.service, tokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
