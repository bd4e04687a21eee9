package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStock_Valid(t *testing.T) {
	for _, s := range Stocks {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Stock("").Valid())
	assert.False(t, Stock("GONE").Valid())
}

func TestUser_JSONHidesHash(t *testing.T) {
	u := User{ID: "u1", Email: "a@b.c", Name: "A", PasswordHash: "$2a$12$secret", CreatedAt: time.Unix(0, 0).UTC()}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
	assert.Equal(t, UserProjection{ID: "u1", Email: "a@b.c", Name: "A"}, u.Projection())
}

func TestCheapie_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Cheapie{ID: 3, Name: "Chips", Store: "cafeA", Quantity: 5, Price: 2.5, AddBy: DefaultAddBy, Stock: StockPlenty})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"id", "name", "store", "quantity", "price", "addBy", "exp", "image", "stock", "createdAt"} {
		assert.Contains(t, m, k)
	}
	assert.Nil(t, m["exp"])
	assert.Equal(t, "plenty", m["stock"])
}
