package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyDump reports an import document holding none of the tracker keys.
var ErrEmptyDump = errors.New("tracker: dump holds no tracker keys")

// Dump renders the persisted state and presets in the key-value shape of
// a browser storage dump, so Import can read it back.
func (t *Tracker) Dump() ([]byte, error) {
	t.mu.Lock()
	doc := map[string]any{
		StateKey:   t.state,
		PresetsKey: t.presets,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	t.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("encoding dump: %w", err)
	}
	return append(data, '\n'), nil
}

// Lister is a Backend that can enumerate its keys.
type Lister interface {
	Backend
	Keys() ([]string, error)
}

// RawDump renders every stored key with its value as a JSON string, the
// way a browser storage dump looks. Unlike Dump it includes keys the
// tracker does not own, and it reads the backend rather than memory.
func RawDump(backend Lister) ([]byte, error) {
	keys, err := backend.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	doc := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := backend.Get(k)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", k, err)
		}
		if ok {
			doc[k] = v
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding dump: %w", err)
	}
	return append(data, '\n'), nil
}

// ImportResult lists the keys Import wrote and the ones it ignored.
type ImportResult struct {
	Imported []string
	Skipped  []string
}

// Import copies the tracker keys of a storage dump into backend. Values
// may be JSON strings holding the payload, as browsers export them, or
// the payload inlined as an object or array. Keys other than the
// versioned state, legacy state and preset keys are skipped.
func Import(backend Backend, dump []byte) (ImportResult, error) {
	var res ImportResult

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(dump, &raw); err != nil {
		return res, fmt.Errorf("parsing dump: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Every payload is checked before the first write, so a bad value
	// leaves the backend untouched.
	var wanted []string
	payloads := make(map[string]string)
	for _, k := range keys {
		switch k {
		case StateKey, LegacyStateKey, PresetsKey:
		default:
			res.Skipped = append(res.Skipped, k)
			continue
		}
		payload, err := payloadOf(raw[k])
		if err != nil {
			return ImportResult{}, fmt.Errorf("reading %s: %w", k, err)
		}
		wanted = append(wanted, k)
		payloads[k] = payload
	}
	if len(wanted) == 0 {
		return res, ErrEmptyDump
	}

	for _, k := range wanted {
		if err := backend.Set(k, payloads[k]); err != nil {
			return res, fmt.Errorf("writing %s: %w", k, err)
		}
		res.Imported = append(res.Imported, k)
	}
	return res, nil
}

func payloadOf(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if !json.Valid([]byte(s)) {
			return "", errors.New("value is not JSON")
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
