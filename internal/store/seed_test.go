package store

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"linekeeper/internal/domain/line"
)

func TestRandomSeeder_Lines(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		lines := NewRandomSeeder(rand.New(rand.NewSource(seed))).Lines()

		require.GreaterOrEqual(t, len(lines), 4)
		require.LessOrEqual(t, len(lines), 10)
		assert.Equal(t, 1, line.CountDefaults(lines))

		for i, l := range lines {
			assert.True(t, strings.HasPrefix(l.Name, "Line_"), l.Name)
			assert.GreaterOrEqual(t, l.Port, 1000)
			assert.Less(t, l.Port, 10000)
			assert.NotEmpty(t, l.IPAddress)
			assert.Equal(t, -1, line.IndexOf(lines[:i], l.ID), "identifiers must be unique")
		}
	}
}

func TestRandomSeeder_Users(t *testing.T) {
	users := NewRandomSeeder(rand.New(rand.NewSource(1))).Users()

	require.GreaterOrEqual(t, len(users), 3)
	require.LessOrEqual(t, len(users), 7)
	for _, u := range users {
		assert.Len(t, u.Password, 8)
		assert.True(t, u.AuthLevel.Valid())
		assert.NotEmpty(t, u.UserName)
	}
}

func TestRandomSeeder_Deterministic(t *testing.T) {
	a := NewRandomSeeder(rand.New(rand.NewSource(42)))
	b := NewRandomSeeder(rand.New(rand.NewSource(42)))

	assert.Equal(t, a.Lines(), b.Lines())
	assert.Equal(t, a.Users(), b.Users())
}
