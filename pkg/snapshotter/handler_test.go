// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshotter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/server"
	"github.com/NVIDIA/hwstat/pkg/source"
)

type fixedSource struct {
	name, unit string
	value      float64
	panics     bool
}

func (f *fixedSource) Read() (float64, bool) {
	if f.panics {
		panic("device vanished")
	}
	return f.value, true
}
func (f *fixedSource) Unit() string { return f.unit }
func (f *fixedSource) Name() string { return f.name }

func newHandler(t *testing.T, sources ...*fixedSource) *StoreHandler {
	t.Helper()
	g := source.Group{Name: "coretemp"}
	for _, s := range sources {
		g.Sources = append(g.Sources, s)
	}
	cat, err := sampler.FromGroups([]source.Group{g})
	require.NoError(t, err)
	store := sampler.NewStore(cat)

	tx, rx := sampler.NewChannel()
	t.Cleanup(rx.Close)
	_ = sampler.NewEngine(store, tx).Tick()

	return &StoreHandler{Store: store, Version: "test"}
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleSnapshot(t *testing.T) {
	h := newHandler(t,
		&fixedSource{name: "Core 0", unit: "°C", value: 40},
		&fixedSource{name: "Core 1", unit: "°C", value: 42},
	)

	rec := get(h.HandleSnapshot, "/v1/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, "test", snap.Metadata["version"])
	require.Len(t, snap.Measurements, 1)
	require.Len(t, snap.Measurements[0].Subtypes, 2)
	assert.Equal(t, 42.0, snap.Measurements[0].Subtypes[1].Data["current"].Any())
}

func TestHandleSnapshot_SourceFilter(t *testing.T) {
	h := newHandler(t,
		&fixedSource{name: "Core 0", unit: "°C", value: 40},
		&fixedSource{name: "Core 1", unit: "°C", value: 42},
	)

	rec := get(h.HandleSnapshot, "/v1/snapshot?source=coretemp/Core%201")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Measurements, 1)
	require.Len(t, snap.Measurements[0].Subtypes, 1)
	assert.Equal(t, "coretemp/Core 1", snap.Measurements[0].Subtypes[0].Name)
}

func TestHandleSnapshot_Formats(t *testing.T) {
	h := newHandler(t, &fixedSource{name: "Core 0", unit: "°C", value: 40})

	t.Run("yaml", func(t *testing.T) {
		rec := get(h.HandleSnapshot, "/v1/snapshot?format=yaml")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

		var snap Snapshot
		require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &snap))
		assert.Equal(t, "Snapshot", snap.Kind.String())
	})

	t.Run("table", func(t *testing.T) {
		rec := get(h.HandleSnapshot, "/v1/snapshot?format=table")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "SOURCE"))
		assert.Contains(t, rec.Body.String(), "coretemp/Core 0")
	})

	t.Run("unknown", func(t *testing.T) {
		rec := get(h.HandleSnapshot, "/v1/snapshot?format=xml")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSnapshot_MethodNotAllowed(t *testing.T) {
	h := newHandler(t, &fixedSource{name: "Core 0"})

	rec := httptest.NewRecorder()
	h.HandleSnapshot(rec, httptest.NewRequest(http.MethodPost, "/v1/snapshot", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHandleSnapshot_Poisoned(t *testing.T) {
	h := newHandler(t, &fixedSource{name: "Core 0", panics: true})
	require.True(t, h.Store.Poisoned())

	rec := get(h.HandleSnapshot, "/v1/snapshot")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "POISONED", resp.Code)
	assert.False(t, resp.Retryable)
}

func TestHandleSources(t *testing.T) {
	h := newHandler(t,
		&fixedSource{name: "Core 0", unit: "°C"},
		&fixedSource{name: "Core 1", unit: "°C"},
	)

	t.Run("not built", func(t *testing.T) {
		rec := get(h.HandleSources, "/v1/sources")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	h.Sources = NewCatalogue([]source.Group{{Name: "coretemp", Sources: []source.Source{
		&fixedSource{name: "Core 0", unit: "°C"},
		&fixedSource{name: "Core 1", unit: "°C"},
	}}}, "test")

	t.Run("json", func(t *testing.T) {
		rec := get(h.HandleSources, "/v1/sources")
		require.Equal(t, http.StatusOK, rec.Code)

		var cat Catalogue
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
		require.Len(t, cat.Sources, 2)
		assert.Equal(t, "coretemp", cat.Sources[0].Group)
		assert.Equal(t, "Core 1", cat.Sources[1].Source)
		assert.Equal(t, "°C", cat.Sources[1].Unit)
	})

	t.Run("table", func(t *testing.T) {
		rec := get(h.HandleSources, "/v1/sources?format=table")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "GROUP"))
	})

	t.Run("post", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.HandleSources(rec, httptest.NewRequest(http.MethodPost, "/v1/sources", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
