// Copyright 2026 The Logality Authors
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

package logality

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/compute/metadata"
)

// Environment variables consulted when gathering host metadata.
const (
	envHostname          = "LOGALITY_HOSTNAME"
	envPreferGCEHostname = "LOGALITY_PREFER_GCE_HOSTNAME"
)

// gceHostnameTimeout caps the metadata-server round trip so construction
// never stalls off-GCE.
const gceHostnameTimeout = 200 * time.Millisecond

// gatherHostMeta collects the process metadata stamped into
// context.system on every record. It runs once per logger construction.
//
// Resolution order for the hostname: the LOGALITY_HOSTNAME override, then
// os.Hostname, then the GCE metadata server when running on GCE. Setting
// LOGALITY_PREFER_GCE_HOSTNAME promotes the metadata server above
// os.Hostname, which is useful on Container-Optimized OS where the kernel
// hostname is a generated container ID.
func gatherHostMeta() hostMeta {
	meta := hostMeta{
		hostname:    resolveHostname(),
		pid:         os.Getpid(),
		processName: processName(),
	}
	return meta
}

// resolveHostname applies the hostname resolution order described on
// gatherHostMeta.
func resolveHostname() string {
	if override := strings.TrimSpace(os.Getenv(envHostname)); override != "" {
		return override
	}

	preferGCE := isEnvTruthy(os.Getenv(envPreferGCEHostname))
	if preferGCE {
		if name := gceHostname(); name != "" {
			return name
		}
	}
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	if !preferGCE {
		if name := gceHostname(); name != "" {
			return name
		}
	}
	return "localhost"
}

// gceHostname asks the metadata server for the instance hostname when the
// process runs on Google Compute Engine.
func gceHostname() string {
	if !metadata.OnGCE() {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), gceHostnameTimeout)
	defer cancel()

	name, err := metadata.HostnameWithContext(ctx)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// processName derives the process name from the executable path.
func processName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "unknown"
	}
	return filepath.Base(os.Args[0])
}

// isEnvTruthy parses the boolean tokens accepted across LOGALITY_* variables.
func isEnvTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "on":
		return true
	default:
		return false
	}
}
