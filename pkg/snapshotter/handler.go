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
	"bytes"
	"net/http"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/serializer"
	"github.com/NVIDIA/hwstat/pkg/server"
)

// StoreHandler serves the live contents of a sampling store.
type StoreHandler struct {
	Store   *sampler.Store
	Version string

	// Sources is the catalogue served by HandleSources. It is built once
	// at discovery since the set of sources never changes.
	Sources *Catalogue
}

var contentTypes = map[serializer.Format]string{
	serializer.FormatJSON:  "application/json",
	serializer.FormatYAML:  "application/yaml",
	serializer.FormatTable: "text/plain; charset=utf-8",
}

// HandleSnapshot processes GET /v1/snapshot.
//
// Query parameters:
//   - source: wildcard pattern on "<group>/<source>", may be repeated
//   - format: json (default), yaml or table
//
// A poisoned store is reported as 503 rather than served.
func (h *StoreHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	format, ok := negotiateFormat(w, r)
	if !ok {
		return
	}

	state := h.Store.Snapshot()
	if state.Poisoned {
		server.WriteErrorFromErr(w, r, sampler.ErrPoisoned, "Sampling store poisoned",
			map[string]any{"tick": state.Tick})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respond(w, r, format, FromStore(state, h.Version).Filter(r.URL.Query()["source"]))
}

// HandleSources processes GET /v1/sources. It accepts the same format
// parameter as HandleSnapshot.
func (h *StoreHandler) HandleSources(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	format, ok := negotiateFormat(w, r)
	if !ok {
		return
	}
	if h.Sources == nil {
		server.WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"Source catalogue not available", true, nil)
		return
	}
	respond(w, r, format, h.Sources)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{http.MethodGet},
		})
	return false
}

func negotiateFormat(w http.ResponseWriter, r *http.Request) (serializer.Format, bool) {
	f := r.URL.Query().Get("format")
	if f == "" {
		return serializer.FormatJSON, true
	}
	format := serializer.Format(f)
	if format.IsUnknown() {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Unsupported format", false, map[string]any{
				"format":    f,
				"supported": serializer.SupportedFormats(),
			})
		return "", false
	}
	return format, true
}

func respond(w http.ResponseWriter, r *http.Request, format serializer.Format, doc any) {
	if format == serializer.FormatJSON {
		serializer.RespondJSON(w, http.StatusOK, doc)
		return
	}

	var buf bytes.Buffer
	if err := serializer.NewWriter(format, &buf).Serialize(r.Context(), doc); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to serialize document", nil)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
