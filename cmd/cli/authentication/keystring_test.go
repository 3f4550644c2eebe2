package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("http://localhost:8000/api")

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)

	require.NoError(t, store.Save(&StoredCredentials{AccessToken: "tok", Username: "reader"}))

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", creds.AccessToken)
	assert.Equal(t, "reader", creds.Username)

	require.NoError(t, store.Delete())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestKeyringStore_DeleteWhenEmpty(t *testing.T) {
	keyring.MockInit()
	assert.NoError(t, NewKeyringStore("http://localhost:8000/api").Delete())
}

func TestKeyringStore_SeparatesHosts(t *testing.T) {
	keyring.MockInit()
	local := NewKeyringStore("http://localhost:8000/api")
	remote := NewKeyringStore("https://webtoons.example.com/api")

	require.NoError(t, local.Save(&StoredCredentials{AccessToken: "local-tok", Username: "reader"}))

	_, err := remote.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)

	// same host, different path or case, shares the login
	creds, err := NewKeyringStore("http://LOCALHOST:8000/other").Load()
	require.NoError(t, err)
	assert.Equal(t, "local-tok", creds.AccessToken)
}

func TestServiceFor(t *testing.T) {
	tests := []struct {
		apiURL string
		want   string
	}{
		{"http://localhost:8000/api", "webtoonhub-cli@localhost:8000"},
		{"https://webtoons.example.com", "webtoonhub-cli@webtoons.example.com"},
		{"", "webtoonhub-cli"},
		{"not a url", "webtoonhub-cli"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ServiceFor(tt.apiURL), tt.apiURL)
	}
}
