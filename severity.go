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

import "fmt"

// Severity identifies the importance of a log record using the Syslog
// ordering: lower values are more severe. The eight canonical levels map to
// the ranks 0 through 7 and the rank is what appears in the record's
// "severity" field.
type Severity int

// Canonical severity levels, most severe first. The integer value of each
// constant is its rank and also its index in severityNames.
const (
	SeverityEmergency Severity = iota // 0
	SeverityAlert                     // 1
	SeverityCritical                  // 2
	SeverityError                     // 3
	SeverityWarn                      // 4
	SeverityNotice                    // 5
	SeverityInfo                      // 6
	SeverityDebug                     // 7
)

// SeverityInvalid is the sentinel returned by ParseSeverity for names outside
// the eight-level table.
const SeverityInvalid Severity = -1

// severityNames is ordered so that the index of a name equals its rank.
var severityNames = [...]string{
	"emergency",
	"alert",
	"critical",
	"error",
	"warn",
	"notice",
	"info",
	"debug",
}

// String returns the canonical lowercase name of the severity, or a
// "severity(N)" placeholder for values outside the table.
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// Valid reports whether the severity is one of the eight canonical levels.
func (s Severity) Valid() bool {
	return s >= SeverityEmergency && s <= SeverityDebug
}

// ParseSeverity maps a canonical level name to its Severity. Unknown names
// yield SeverityInvalid and an error wrapping ErrInvalidLevel.
func ParseSeverity(name string) (Severity, error) {
	for rank, candidate := range severityNames {
		if candidate == name {
			return Severity(rank), nil
		}
	}
	return SeverityInvalid, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}
