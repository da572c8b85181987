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

// Package header provides the common header of exported hwstat documents.
//
// Every document written by the snapshot, list and serve commands starts
// with a Kubernetes-style header:
//
//	kind: Snapshot
//	apiVersion: hwstat.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-06-01T12:00:00Z"
//	  version: v0.3.0
//	  hostname: node-1
//
// Create one with functional options; the API version and creation time
// are always set:
//
//	h := header.New(
//	    header.WithKind(header.KindSnapshot),
//	    header.WithVersion("v0.3.0"),
//	    header.WithMetadata(header.MetadataHostname, host),
//	)
//
// Documents read back with snapshot --from are checked with Expect before
// they are rendered.
package header
