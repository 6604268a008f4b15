package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/pos-bom/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBConfig() config.DBConfig {
	return config.DBConfig{
		Host: "localhost", Port: 5432, User: "pos", Password: "secret", DBName: "pos_bom", SSLMode: "disable",
		AppName: "pos-bom", MaxConns: 8, MinConns: 2, LockTimeoutMS: 3000,
	}
}

func TestPoolConfig_AplicaLaConfiguracion(t *testing.T) {
	pc, err := poolConfig(testDBConfig())
	require.NoError(t, err)

	assert.Equal(t, "pos-bom", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "3000", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, "pos_bom", pc.ConnConfig.Database)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_MinNoSuperaMax(t *testing.T) {
	cfg := testDBConfig()
	cfg.MaxConns = 3
	cfg.MinConns = 10

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(3), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
}

func TestPoolConfig_SinValoresConservaLosDelDSN(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://pos@db:5432/pos_bom?application_name=otro&pool_max_conns=4"}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "otro", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(4), pc.MaxConns)
	_, ok := pc.ConnConfig.RuntimeParams["lock_timeout"]
	assert.False(t, ok)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://pos@db:notaport/x"})
	assert.ErrorContains(t, err, "parse DSN")
}

func TestIPv4Addr(t *testing.T) {
	addr, err := ipv4Addr(context.Background(), "10.0.0.7:5432")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7:5432", addr)

	_, err = ipv4Addr(context.Background(), "[::1]:5432")
	assert.ErrorContains(t, err, "no es IPv4")

	_, err = ipv4Addr(context.Background(), "sin-puerto")
	assert.Error(t, err)
}
