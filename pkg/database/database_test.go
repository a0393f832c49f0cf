package database

import (
	"fmt"
	"testing"

	"rental_coach_backend/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", DBName: "rental", Charset: "utf8mb4", ParseTime: true,
	})
	assert.Equal(t, "u:p@tcp(db:3306)/rental?charset=utf8mb4&parseTime=true&loc=Local", dsn)
}

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := InitRedis(&config.RedisConfig{Enabled: true, Host: mr.Host(), Port: portOf(t, mr)})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()
}

func portOf(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	var p int
	_, err := fmt.Sscanf(mr.Port(), "%d", &p)
	require.NoError(t, err)
	return p
}
