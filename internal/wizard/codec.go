package wizard

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// FragmentPrefix is the location-hash marker carrying an encoded snapshot.
const FragmentPrefix = "#state="

// EncodeFragment turns a snapshot into its URL-safe transport form: base64
// (URL alphabet, padding stripped) over the JSON serialization.
func EncodeFragment(snap PersistedSnapshot) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeFragment is the exact inverse of EncodeFragment. Malformed input of
// any kind yields ok == false, never a panic or error value to handle: the
// caller falls back to factory defaults. Padded input and a leading
// "#state=" marker are tolerated.
func DecodeFragment(fragment string) (PersistedSnapshot, bool) {
	fragment = strings.TrimSpace(fragment)
	fragment = strings.TrimPrefix(fragment, FragmentPrefix)
	fragment = strings.TrimPrefix(fragment, "state=")
	fragment = strings.TrimRight(fragment, "=")
	if fragment == "" {
		return PersistedSnapshot{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(fragment)
	if err != nil {
		return PersistedSnapshot{}, false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return PersistedSnapshot{}, false
	}

	var snap PersistedSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return PersistedSnapshot{}, false
	}
	return snap, true
}
