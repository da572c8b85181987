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

package header

import (
	"fmt"
	"time"

	"github.com/NVIDIA/hwstat/pkg/errors"
)

// Kind represents the type of an exported hwstat document.
type Kind string

// Valid Kind constants for all exported document types.
const (
	KindSnapshot  Kind = "Snapshot"
	KindCatalogue Kind = "Catalogue"
)

// APIVersion is the schema version of every exported document.
const APIVersion = "hwstat.nvidia.com/v1alpha1"

// Metadata keys set on exported documents.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataHostname  = "hostname"
	MetadataSession   = "session"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSnapshot, KindCatalogue:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata entry. Empty values are not recorded.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if value == "" {
			return
		}
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the document kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithVersion records the hwstat version that produced the document.
func WithVersion(version string) Option {
	return WithMetadata(MetadataVersion, version)
}

// WithTimestamp replaces the creation time with t, typically the
// completion time of the tick behind the values. A zero t is ignored.
func WithTimestamp(t time.Time) Option {
	return func(h *Header) {
		if !t.IsZero() {
			h.Metadata[MetadataTimestamp] = t.UTC().Format(time.RFC3339)
		}
	}
}

// New returns a header at APIVersion stamped with the current time, then
// applies opts in order.
func New(opts ...Option) Header {
	h := Header{
		APIVersion: APIVersion,
		Metadata: map[string]string{
			MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header contains metadata and versioning information for exported documents.
// It follows Kubernetes-style resource conventions with Kind, APIVersion, and Metadata fields.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing where and when the document was produced.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GetKind returns the Kind field of the Header.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// Expect reports an ErrCodeInvalidRequest error unless h describes a
// document of kind at APIVersion. It is used on documents read back from
// files or other hwstat instances.
func (h *Header) Expect(kind Kind) error {
	got := h.GetKind()
	switch {
	case !got.IsValid():
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown document kind %q", got),
			map[string]any{"kind": got.String()})
	case got != kind:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("expected a %s document, got %s", kind, got),
			map[string]any{"kind": got.String(), "expected": kind.String()})
	case h.APIVersion != APIVersion:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported apiVersion %q", h.APIVersion),
			map[string]any{"apiVersion": h.APIVersion, "expected": APIVersion})
	}
	return nil
}
