package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	strict := New(time.Second, Options{})
	local := NewLocal(time.Second)

	t.Run("disallowed scheme", func(t *testing.T) {
		_, err := strict.ValidateURL("ftp://example.com/file")
		assert.Error(t, err)
	})

	t.Run("userinfo blocked", func(t *testing.T) {
		_, err := strict.ValidateURL("http://evil.com@localhost/parse")
		assert.Error(t, err)
	})

	t.Run("localhost blocked without loopback", func(t *testing.T) {
		_, err := strict.ValidateURL("http://localhost:2626/parse")
		assert.Error(t, err)

		_, err = strict.ValidateURL("http://127.0.0.1:8000/parse")
		assert.Error(t, err)
	})

	t.Run("localhost allowed with loopback", func(t *testing.T) {
		_, err := local.ValidateURL("http://localhost:2626/parse")
		assert.NoError(t, err)

		_, err = local.ValidateURL("http://0.0.0.0:8000/parse")
		assert.NoError(t, err)
	})

	t.Run("public host allowed", func(t *testing.T) {
		_, err := strict.ValidateURL("https://example.com/parse")
		assert.NoError(t, err)
	})
}

func TestDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Run("local client reaches test server", func(t *testing.T) {
		client := NewLocal(time.Second)
		req, err := http.NewRequest(http.MethodGet, server.URL, nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("strict client blocks test server", func(t *testing.T) {
		client := New(time.Second, Options{})
		req, err := http.NewRequest(http.MethodGet, server.URL, nil)
		require.NoError(t, err)

		_, err = client.Do(req)
		assert.Error(t, err)
	})
}
