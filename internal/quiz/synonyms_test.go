package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynonymsSemicolons(t *testing.T) {
	got := Synonyms("salut; bonjour; coucou")
	assert.Equal(t, []string{"salut", "bonjour", "coucou"}, got)
}

func TestSynonymsNewlines(t *testing.T) {
	got := Synonyms("salut\nbonjour")
	assert.Equal(t, []string{"salut", "bonjour"}, got)

	// CRLF-delimited fields leave no carriage return on the alternates.
	got = Synonyms("salut\r\nbonjour\r\n")
	assert.Equal(t, []string{"salut", "bonjour"}, got)
}

func TestSynonymsCommasOnlyWithoutSemicolons(t *testing.T) {
	// Comma-delimited field.
	assert.Equal(t, []string{"salut", "bonjour"}, Synonyms("salut, bonjour"))

	// A semicolon anywhere disables comma splitting so phrases with
	// embedded commas survive.
	got := Synonyms("eh bien, alors; bon")
	assert.Equal(t, []string{"eh bien, alors", "bon"}, got)
}

func TestSynonymsDropsClassifiers(t *testing.T) {
	got := Synonyms("livre; CL:本; bouquin")
	assert.Equal(t, []string{"livre", "bouquin"}, got)

	assert.Nil(t, Synonyms("cl:個|个"))
}

func TestSynonymsTrimsSlashes(t *testing.T) {
	got := Synonyms("/salut/; bonjour ")
	assert.Equal(t, []string{"salut", "bonjour"}, got)
}

func TestSynonymsKeepsOrderAndDuplicates(t *testing.T) {
	got := Synonyms("b; a; b")
	assert.Equal(t, []string{"b", "a", "b"}, got)
}

func TestSynonymsEmpty(t *testing.T) {
	assert.Nil(t, Synonyms(""))
	assert.Nil(t, Synonyms("  "))
	assert.Nil(t, Synonyms("; ;"))
}
