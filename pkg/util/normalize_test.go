package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "gare genereux", NormalizeText("Gare Généreux"))
	assert.Equal(t, "uberseequartier", NormalizeText("Überseequartier"))
	assert.Equal(t, "sao paulo", NormalizeText("São Paulo"))
	assert.Equal(t, "central station", NormalizeText("CENTRAL STATION"))
	assert.Equal(t, "", NormalizeText(""))
}

func TestNormalizeTextIdempotent(t *testing.T) {
	once := NormalizeText("Hôtel-de-Ville")
	assert.Equal(t, once, NormalizeText(once))
}

func TestRemoveDuplicateStrings(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"a", "b", "a", "", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, result)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "abc", TrimString("abcdef", 3))
	assert.Equal(t, "abc", TrimString("abc", 10))
}
