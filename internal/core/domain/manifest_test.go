package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

func TestManifest_PreservesKeyOrder(t *testing.T) {
	src := `{"version":"1.0.0","name":"@org/lib","scripts":{"z":"1","a":"2"},"main":"dist/index.js"}`

	m := domain.NewManifest()
	require.NoError(t, json.Unmarshal([]byte(src), m))

	assert.Equal(t, []string{"version", "name", "scripts", "main"}, m.Keys())
	assert.Equal(t, "@org/lib", m.Name())
	assert.Equal(t, "1.0.0", m.Version())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
	assert.Equal(t, src, string(out))
}

func TestOrderedObject_SetKeepsPositionAndDeleteRemoves(t *testing.T) {
	o := domain.NewOrderedObject()
	o.SetString("a", "1")
	o.SetString("b", "2")
	o.SetString("c", "3")

	o.SetString("a", "changed")
	o.Delete("b")
	o.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, o.Keys())
	v, ok := o.GetString("a")
	assert.True(t, ok)
	assert.Equal(t, "changed", v)
}

func TestOrderedObject_SetDoesNotEscapeHTML(t *testing.T) {
	o := domain.NewOrderedObject()
	o.SetString("react", ">=18 <19")

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(out), `">=18 <19"`)
}

func TestOrderedObject_CloneIsIndependent(t *testing.T) {
	o := domain.NewOrderedObject()
	o.SetString("a", "1")

	c := o.Clone()
	c.SetString("b", "2")
	c.Delete("a")

	assert.Equal(t, []string{"a"}, o.Keys())
	assert.Equal(t, []string{"b"}, c.Keys())
}

func TestOrderedObject_RejectsNonObject(t *testing.T) {
	o := domain.NewOrderedObject()
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), o))
}

func TestManifest_PeerDependencyNames(t *testing.T) {
	m := domain.NewManifest()
	require.NoError(t, json.Unmarshal([]byte(`{"peerDependencies":{"react":"^18","react-dom":"^18"}}`), m))

	names := m.PeerDependencyNames()
	assert.Len(t, names, 2)
	assert.Contains(t, names, "react")
	assert.Contains(t, names, "react-dom")
}

func TestManifestFragment(t *testing.T) {
	out, err := json.Marshal(domain.ManifestFragment(domain.FormatCJS))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"commonjs"}`, string(out))
}

func TestDiagnostic_String(t *testing.T) {
	diags := []domain.Diagnostic{
		{File: "src/index.ts", Line: 3, Column: 7, Message: "Type 'string' is not assignable to type 'number'."},
		{Message: "Cannot find global type 'Array'."},
	}
	assert.Equal(t,
		"src/index.ts (3,7): Type 'string' is not assignable to type 'number'.\nCannot find global type 'Array'.",
		domain.FormatDiagnostics(diags),
	)
}
