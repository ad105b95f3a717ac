package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.trai.ch/zerr"
)

// OrderedObject is a JSON object that keeps its keys in insertion order.
// Values are kept as raw JSON so unknown fields survive a round trip unchanged.
type OrderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewOrderedObject creates an empty OrderedObject.
func NewOrderedObject() *OrderedObject {
	return &OrderedObject{values: make(map[string]json.RawMessage)}
}

// Keys returns the keys in order.
func (o *OrderedObject) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *OrderedObject) Len() int {
	return len(o.keys)
}

// Has reports whether the key is present.
func (o *OrderedObject) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Raw returns the raw JSON value of a key.
func (o *OrderedObject) Raw(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// SetRaw stores a raw JSON value. Existing keys keep their position.
func (o *OrderedObject) SetRaw(key string, raw json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

// Set encodes v and stores it under key. Existing keys keep their position.
func (o *OrderedObject) Set(key string, v any) error {
	raw, err := marshalValue(v)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode value"), "key", key)
	}
	o.SetRaw(key, raw)
	return nil
}

// SetString stores a string value.
func (o *OrderedObject) SetString(key, value string) {
	raw, _ := marshalValue(value)
	o.SetRaw(key, raw)
}

// Delete removes a key.
func (o *OrderedObject) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// GetString returns the value of key when it is a JSON string.
func (o *OrderedObject) GetString(key string) (string, bool) {
	raw, ok := o.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Object returns the value of key when it is a JSON object.
func (o *OrderedObject) Object(key string) (*OrderedObject, bool) {
	raw, ok := o.values[key]
	if !ok || !isObject(raw) {
		return nil, false
	}
	child := NewOrderedObject()
	if err := json.Unmarshal(raw, child); err != nil {
		return nil, false
	}
	return child, true
}

// Clone returns a deep copy.
func (o *OrderedObject) Clone() *OrderedObject {
	c := &OrderedObject{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]json.RawMessage, len(o.values)),
	}
	for k, v := range o.values {
		c.values[k] = append(json.RawMessage(nil), v...)
	}
	return c
}

// MarshalJSON implements json.Marshaler.
func (o *OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalValue(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(o.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Duplicate keys keep their first position and last value.
func (o *OrderedObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.New("expected a JSON object")
	}

	o.keys = nil
	o.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return zerr.New("expected an object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		o.SetRaw(key, raw)
	}
	_, err = dec.Token()
	return err
}

// Manifest is a package.json document.
type Manifest struct {
	OrderedObject
}

// NewManifest creates an empty Manifest.
func NewManifest() *Manifest {
	return &Manifest{OrderedObject: *NewOrderedObject()}
}

// Name returns the package name.
func (m *Manifest) Name() string {
	s, _ := m.GetString("name")
	return s
}

// Version returns the package version.
func (m *Manifest) Version() string {
	s, _ := m.GetString("version")
	return s
}

// PeerDependencyNames returns the names declared under peerDependencies.
func (m *Manifest) PeerDependencyNames() map[string]struct{} {
	names := make(map[string]struct{})
	if peers, ok := m.Object("peerDependencies"); ok {
		for _, k := range peers.Keys() {
			names[k] = struct{}{}
		}
	}
	return names
}

// CloneManifest returns a deep copy of the manifest.
func (m *Manifest) CloneManifest() *Manifest {
	return &Manifest{OrderedObject: *m.Clone()}
}

// ManifestFragment returns the minimal manifest placed in a format directory.
func ManifestFragment(f Format) *Manifest {
	m := NewManifest()
	m.SetString("type", f.PackageType())
	return m
}

func marshalValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func isObject(raw json.RawMessage) bool {
	return strings.HasPrefix(strings.TrimSpace(string(raw)), "{")
}

// IsJSONString reports whether a raw value is a JSON string.
func IsJSONString(raw json.RawMessage) bool {
	return strings.HasPrefix(strings.TrimSpace(string(raw)), `"`)
}

// IsJSONObject reports whether a raw value is a JSON object.
func IsJSONObject(raw json.RawMessage) bool {
	return isObject(raw)
}
