package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/snapshotter"
	"github.com/NVIDIA/hwstat/pkg/source"
)

func writeSysfs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func testTree(t *testing.T) string {
	return writeSysfs(t, map[string]string{
		"devices/system/cpu/cpufreq/policy0/scaling_cur_freq": "1800000\n",
		"class/hwmon/hwmon0/name":                             "coretemp\n",
		"class/hwmon/hwmon0/temp1_input":                      "38000\n",
	})
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "hwstatd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestNew_DiscoveryFailure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "class"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "class", "hwmon"), nil, 0o644))

	_, err := New(context.Background(), Config{SysRoot: root, Registerer: prometheus.NewRegistry()})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDiscovery, errors.CodeOf(err))
}

func TestNew_ExporterRegisteredTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	root := testTree(t)

	first, err := New(context.Background(), Config{SysRoot: root, Registerer: reg})
	require.NoError(t, err)
	require.NotNil(t, first.Store())

	_, err = New(context.Background(), Config{SysRoot: root, Registerer: reg})
	assert.NoError(t, err)
}

func TestDaemonRun(t *testing.T) {
	t.Setenv("PORT", "0")
	t.Setenv("NOTIFY_SOCKET", "")

	d, err := New(context.Background(), Config{
		SysRoot:    testTree(t),
		Address:    "127.0.0.1",
		Version:    "test",
		Registerer: prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool {
		return d.Server().Addr() != nil && d.Store().Snapshot().Tick > 0
	}, 5*time.Second, 20*time.Millisecond)

	base := fmt.Sprintf("http://%s", d.Server().Addr())

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ready")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/v1/snapshot?source=coretemp/*")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap snapshotter.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "test", snap.Metadata["version"])
	require.Len(t, snap.Measurements, 1)
	assert.Equal(t, "coretemp/temp1", snap.Measurements[0].Subtypes[0].Name)

	resp, err = http.Get(base + "/v1/sources")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

// flakySource reads once and panics on every later read.
type flakySource struct {
	reads int
}

func (s *flakySource) Read() (float64, bool) {
	s.reads++
	if s.reads > 1 {
		panic("sensor driver went away")
	}
	return 42, true
}

func (s *flakySource) Unit() string { return "°C" }
func (s *flakySource) Name() string { return "temp1" }

func TestDaemonRun_PoisonedStoreKeepsServing(t *testing.T) {
	t.Setenv("PORT", "0")
	t.Setenv("NOTIFY_SOCKET", "")

	groups := []source.Group{{Name: "coretemp", Sources: []source.Source{&flakySource{}}}}
	d, err := newDaemon(groups, Config{
		Address:    "127.0.0.1",
		Version:    "test",
		Registerer: prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool {
		return d.Server().Addr() != nil && d.Store().Poisoned()
	}, 10*time.Second, 20*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("daemon exited after the store was poisoned: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	base := fmt.Sprintf("http://%s", d.Server().Addr())

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/ready", http.StatusServiceUnavailable},
		{"/v1/snapshot", http.StatusServiceUnavailable},
		{"/v1/sources", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(base + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon did not stop")
	}
}
