package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeyNormalizesCaseAndWhitespace(t *testing.T) {
	a := DeriveKey("Meta", "Instagram", "")
	b := DeriveKey(" meta ", "INSTAGRAM", "")
	assert.Equal(t, a, b)
	assert.Equal(t, "meta-instagram", a)
}

func TestDeriveKeyCompanyOnly(t *testing.T) {
	assert.Equal(t, "acme", DeriveKey("Acme", "", ""))
}

func TestDeriveKeyIncludesURL(t *testing.T) {
	key := DeriveKey("Acme", "", "https://Acme.example/Policies")
	assert.Equal(t, "acme-https---acme-example-policies", key)
}

func TestDeriveKeySanitizesSpecialCharacters(t *testing.T) {
	assert.Equal(t, "at-t", DeriveKey("AT&T", "", ""))
	assert.Equal(t, "caf--wi-fi", DeriveKey("Café", "Wi Fi", ""))
}

func TestDeriveKeyDistinguishesProductPresence(t *testing.T) {
	assert.NotEqual(t, DeriveKey("Acme", "Widget", ""), DeriveKey("Acme", "", ""))
}
