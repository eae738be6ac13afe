package disaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAlias(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#Yagi", "yagi"},
		{"  Typhoon ", "typhoon"},
		{"#FLOOD", "flood"},
		{"yagi", "yagi"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAlias(tt.in))
	}
}

func TestFindByExactAlias(t *testing.T) {
	r := NewDefaultRegistry()

	hashPrefixed, ok := r.FindByExactAlias("#Yagi")
	require.True(t, ok)

	bare, ok := r.FindByExactAlias("yagi")
	require.True(t, ok)

	assert.Same(t, hashPrefixed, bare)
	assert.Equal(t, "yagi", bare.Name())

	byAlias, ok := r.FindByExactAlias("Typhoon")
	require.True(t, ok)
	assert.Equal(t, "yagi", byAlias.Name())

	_, ok = r.FindByExactAlias("earthquake")
	assert.False(t, ok)
}

func TestFindInTextRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha")
	r.AddAlias("alpha", "storm")

	r.Register("beta")
	r.AddAlias("beta", "storm")

	// Both identities carry the "storm" alias; the earliest registration wins.
	got, ok := r.FindInText("big STORM hit the coast")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name())
}

func TestFindByExactAliasCollision(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha")
	r.AddAlias("alpha", "storm")

	r.Register("beta")
	r.AddAlias("beta", "storm")

	// The exact lookup resolves collisions the same way FindInText does.
	got, ok := r.FindByExactAlias("#Storm")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name())

	// Both identities still carry the alias in their own sets.
	beta, ok := r.Get("beta")
	require.True(t, ok)
	assert.True(t, beta.Matches("storm"))
}

func TestFindByExactAliasManyIdentities(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"yagi", "matmo", "bualoi", "trami", "kong-rey"} {
		r.Register(name)
		r.AddAlias(name, "#"+name)
	}

	got, ok := r.FindByExactAlias("#kong-rey")
	require.True(t, ok)
	assert.Equal(t, "kong-rey", got.Name())

	got, ok = r.FindByExactAlias("trami")
	require.True(t, ok)
	assert.Equal(t, "trami", got.Name())

	_, ok = r.FindByExactAlias("usagi")
	assert.False(t, ok)
}

func TestFindInText(t *testing.T) {
	r := NewDefaultRegistry()

	got, ok := r.FindInText("Relief supplies arriving after typhoon Yagi")
	require.True(t, ok)
	assert.Equal(t, "yagi", got.Name())

	got, ok = r.FindInText("nước lũ dâng cao #bualoi")
	require.True(t, ok)
	assert.Equal(t, "flood", got.Name())

	_, ok = r.FindInText("nothing to see here")
	assert.False(t, ok)

	_, ok = r.FindInText("")
	assert.False(t, ok)
}

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry()

	created := r.GetOrCreate("#Landslide")
	require.NotNil(t, created)
	assert.Equal(t, "landslide", created.Name())

	again := r.GetOrCreate("landslide")
	assert.Same(t, created, again)
	assert.Equal(t, []string{"landslide"}, r.Names())
}

func TestAddAlias(t *testing.T) {
	r := NewRegistry()
	r.Register("quake")
	r.AddAlias("quake", "#Earthquake")

	got, ok := r.FindByExactAlias("earthquake")
	require.True(t, ok)
	assert.Equal(t, "quake", got.Name())

	// Unknown identity is a no-op.
	r.AddAlias("unknown", "x")
	_, ok = r.FindByExactAlias("x")
	assert.False(t, ok)
}
