package pokeapi

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	sprite := pngBytes(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/pokemon/pikachu", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"pikachu","weight":60,"height":4}`))
	})
	mux.HandleFunc("/api/v2/pokemon/garbled", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":`))
	})
	mux.HandleFunc("/sprites/25.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(sprite)
	})
	mux.HandleFunc("/sprites/broken.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	})
	mux.HandleFunc("/slow/", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchPokemon(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(zap.NewNop().Sugar(), WithBaseUrl(server.URL+"/api/v2/pokemon/"))

	doc, err := client.FetchPokemon(context.Background(), "pikachu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"pikachu","weight":60,"height":4}`, string(doc))
}

func TestFetchPokemonNotFound(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(zap.NewNop().Sugar(), WithBaseUrl(server.URL+"/api/v2/pokemon"))

	_, err := client.FetchPokemon(context.Background(), "missingno")
	httpErr, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, server.URL+"/api/v2/pokemon/missingno", httpErr.URL)
}

func TestFetchPokemonInvalidJSON(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(zap.NewNop().Sugar(), WithBaseUrl(server.URL+"/api/v2/pokemon"))

	_, err := client.FetchPokemon(context.Background(), "garbled")
	require.Error(t, err)
	_, ok := AsHTTPError(err)
	assert.False(t, ok)
}

func TestFetchPokemonTimeout(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(zap.NewNop().Sugar(), WithBaseUrl(server.URL+"/slow"), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := client.FetchPokemon(context.Background(), "pikachu")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchImage(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(zap.NewNop().Sugar())

	img, err := client.FetchImage(context.Background(), server.URL+"/sprites/25.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
}

func TestFetchImageFailures(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(zap.NewNop().Sugar())
	testCases := []struct {
		name           string
		url            string
		expectedStatus int
	}{
		{name: "undecodable bytes", url: server.URL + "/sprites/broken.png"},
		{name: "missing sprite", url: server.URL + "/sprites/404.png", expectedStatus: http.StatusNotFound},
		{name: "bad url", url: "http://%zz"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.FetchImage(context.Background(), tc.url)
			imgErr, ok := AsImageError(err)
			require.True(t, ok, "expected ImageError, got %v", err)
			assert.Equal(t, tc.url, imgErr.URL)
			if tc.expectedStatus != 0 {
				httpErr, ok := AsHTTPError(err)
				require.True(t, ok)
				assert.Equal(t, tc.expectedStatus, httpErr.StatusCode)
			}
		})
	}
}
