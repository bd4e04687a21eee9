package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntities(t *testing.T) {
	assert.Equal(t, []string{"Cheapie", "Place", "User"}, Entities())
}

func TestKeyFieldFirst(t *testing.T) {
	for entity, want := range map[string]string{"User": "id", "Place": "identifier", "Cheapie": "id"} {
		k, ok := Key(entity)
		require.True(t, ok, entity)
		assert.Equal(t, want, k.Name, entity)
	}
	_, ok := Key("Song")
	assert.False(t, ok)
}

func TestCheapieFields(t *testing.T) {
	fields, ok := Lookup("Cheapie")
	require.True(t, ok)

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.True(t, byName["image"].IsFile)
	assert.True(t, byName["image"].IsOptional)
	assert.Equal(t, TypeImageURL, byName["image"].Type)
	assert.Equal(t, []string{"plenty", "mid", "low", "gone"}, byName["stock"].EnumOptions)
	assert.False(t, byName["addBy"].Editable())
	assert.True(t, byName["price"].Editable())
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("Nope")
	assert.False(t, ok)
}
