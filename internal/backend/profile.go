// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Profile is the authenticated user's display data.
type Profile struct {
	Name      string  `json:"nome"`
	Login     string  `json:"login"`
	LoginAt   Instant `json:"login_em"`
	SessionID string  `json:"session_id"`
	// Server is the label of the serving backend; it is not part of the
	// payload and is filled in by the session controller.
	Server string `json:"-"`
}

// DisplayLayout is the fixed dd/mm/yyyy convention used for login instants.
const DisplayLayout = "02/01/2006 15:04:05"

// Instant is a server-assigned timestamp. It accepts RFC 3339, the zone-less
// ISO forms some backends emit (read as UTC), RFC 1123 and epoch milliseconds.
// Parsed values are normalized to UTC. The field is display-only, so a value
// in any other shape decodes to the zero instant instead of failing the
// surrounding profile.
type Instant struct {
	time.Time
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC1123,
	time.RFC1123Z,
}

// UnmarshalJSON implements json.Unmarshaler. It never fails: null, "" and
// unrecognized values decode to the zero instant.
func (i *Instant) UnmarshalJSON(b []byte) error {
	i.Time = parseInstant(bytes.TrimSpace(b))
	return nil
}

func parseInstant(b []byte) time.Time {
	var ms json.Number
	if err := json.Unmarshal(b, &ms); err == nil {
		if n, err := ms.Int64(); err == nil {
			return time.UnixMilli(n).UTC()
		}
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// MarshalJSON implements json.Marshaler.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.UTC().Format(time.RFC3339Nano))
}

// Display renders the instant in loc using DisplayLayout, or "-" when unknown.
func (i Instant) Display(loc *time.Location) string {
	if i.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.UTC
	}
	return i.In(loc).Format(DisplayLayout)
}
