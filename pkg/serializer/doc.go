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

// Package serializer encodes and decodes hwstat documents.
//
// # Formats
//
//   - json: indented, the format served by the HTTP API
//   - yaml: gopkg.in/yaml.v3
//   - table: tabwriter output for terminals; write only
//
// Values implementing Tabular control their own table layout (the live
// console view uses this). Anything else is flattened into FIELD/VALUE
// rows keyed by its field path.
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	if err := w.Serialize(ctx, snap); err != nil {
//	    return err
//	}
//
// An empty or uncreatable path falls back to stdout.
//
// # Reading
//
// FromFile loads a document from a local path or an http(s) URL. The
// format comes from the extension; extensionless URLs such as the
// /v1/snapshot endpoint of a remote hwstat server are read as JSON.
//
//	snap, err := serializer.FromFile[snapshotter.Snapshot]("http://node-1:8080/v1/snapshot")
//
// Remote reads go through HttpReader, whose transport timeouts come from
// the defaults package.
//
// # HTTP responses
//
//	serializer.RespondJSON(w, http.StatusOK, snap)
//
// RespondJSON encodes into a buffer first so an encoding failure becomes
// a clean 500 rather than a truncated body.
package serializer
