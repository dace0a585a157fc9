package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/project-review/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DBConfig{Host: "db", User: "app", Password: "pw", Name: "reviews", Port: "5432", SSLMode: "disable"})
	assert.Equal(t, "host=db user=app password=pw dbname=reviews port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestConnectRedis(t *testing.T) {
	client, err := ConnectRedis(context.Background(), &config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = ConnectRedis(context.Background(), &config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}

func TestConnectRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := ConnectRedis(context.Background(), &config.RedisConfig{Address: addr})
	assert.Error(t, err)
}
