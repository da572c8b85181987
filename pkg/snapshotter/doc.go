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

// Package snapshotter turns the sampling store into exported documents.
//
// A Snapshot carries the standard header (kind, apiVersion and metadata
// with timestamp, version, hostname and session) followed by one
// measurement per device family:
//
//	kind: Snapshot
//	apiVersion: hwstat.nvidia.com/v1alpha1
//	metadata:
//	  hostname: node-1
//	  session: 5f0c...
//	  timestamp: "2025-06-01T12:00:00Z"
//	tick: 42
//	measurements:
//	  - type: Hwmon
//	    subtypes:
//	      - subtype: coretemp/Package id 0
//	        data:
//	          current: 45
//	          minimum: 0
//	          maximum: 52
//	          unit: °C
//	          faulted: false
//	          samples: 42
//	        context:
//	          group: coretemp
//	          kind: temp
//
// FromStore builds the document from a sampler.Snapshot; the long running
// server uses it for /v1/snapshot. NodeSnapshotter is the one-shot path
// behind "hwstat snapshot": discover, tick once, serialize.
//
// Snapshot and Catalogue implement serializer.Tabular so the table format
// prints one row per source.
package snapshotter
