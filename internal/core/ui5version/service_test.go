package ui5version

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionJSON = `{
  "latest": {"version": "1.120.1", "support": "Maintenance", "lts": true},
  "1.120": {"version": "1.120.1", "support": "Maintenance", "lts": true},
  "1.96": {"version": "1.96.30", "support": "Maintenance", "lts": true}
}`

const neoAppJSON = `{
  "routes": [
    {"path": "/1.96.30", "target": {"type": "service", "name": "sapui5", "version": "1.96.30"}},
    {"path": "/1.120.1", "target": {"type": "service", "name": "sapui5", "version": "1.120.1"}},
    {"path": "/1.108.5", "target": {"type": "service", "name": "sapui5", "version": "1.108.5"}},
    {"path": "/1.60.1", "target": {"type": "service", "name": "sapui5", "version": "1.60.1"}},
    {"path": "/", "target": {"type": "service", "name": "sapui5"}}
  ]
}`

func newTestService(t *testing.T) (*Service, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Path {
		case "/version.json":
			_, _ = w.Write([]byte(versionJSON))
		case "/neo-app.json":
			_, _ = w.Write([]byte(neoAppJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	s := NewService(server.Client())
	s.CDNURL = server.URL
	s.NeoCDNURL = server.URL
	return s, &calls
}

type fakeSystem struct {
	version string
	err     error
}

func (f fakeSystem) GetUI5Version(context.Context) (string, error) {
	return f.version, f.err
}

func TestService_ReleasedVersionsSortedAndCached(t *testing.T) {
	s, calls := newTestService(t)

	released, err := s.GetReleasedVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.120.1", "1.108.5", "1.96.30", "1.60.1"}, released)

	latest, err := s.GetLatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.120.1", latest)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))

	s.Reset()
	_, err = s.GetPublicVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(calls))
}

func TestService_GetRelevantVersions_NoSystemVersion(t *testing.T) {
	s, _ := newTestService(t)

	versions, err := s.GetRelevantVersions(context.Background(), "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.120.1 (latest)", "1.108.5", "1.96.30"}, versions)
}

func TestService_GetRelevantVersions_ReleasedSystemVersion(t *testing.T) {
	s, _ := newTestService(t)

	versions, err := s.GetRelevantVersions(context.Background(), "1.108.5", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.120.1 (latest)", "1.108.5 (system version)"}, versions)
}

func TestService_GetRelevantVersions_SnapshotSystemVersion(t *testing.T) {
	s, _ := newTestService(t)

	versions, err := s.GetRelevantVersions(context.Background(), "1.121.0.1700000000", false)
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "1.121.0-snapshot-untested (system version)", versions[0])

	versions, err = s.GetRelevantVersions(context.Background(), "1.121.0.1700000000", true)
	require.NoError(t, err)
	assert.Equal(t, "1.120.1 (latest)", versions[0])
}

func TestService_GetRelevantVersions_UnreleasedSystemVersion(t *testing.T) {
	s, _ := newTestService(t)

	versions, err := s.GetRelevantVersions(context.Background(), "1.108.7", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.108.7 (system version)", "1.120.1 (latest)"}, versions)
}

func TestService_LoadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	s := NewService(server.Client())
	s.CDNURL = server.URL
	s.NeoCDNURL = server.URL

	_, err := s.GetRelevantVersions(context.Background(), "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load UI5 versions")
}

func TestService_GetSystemVersion(t *testing.T) {
	s := NewService(nil)

	v, err := s.GetSystemVersion(context.Background(), fakeSystem{version: "1.96.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.96.0", v)

	v, err = s.GetSystemVersion(context.Background(), fakeSystem{version: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = s.GetSystemVersion(context.Background(), fakeSystem{err: errors.New("boom")})
	require.Error(t, err)
}

func TestService_BaseURL(t *testing.T) {
	s := NewService(nil)
	assert.Equal(t, SnapshotCDNURL, s.BaseURL("snapshot-1.96"))
	assert.Equal(t, DefaultCDNURL, s.BaseURL("1.96.0"))
}
