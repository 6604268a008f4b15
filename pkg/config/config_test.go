package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "JWT_SECRET", "STORE_DRIVER", "POS_BOM_VALIDATION_DEFAULT",
		"POS_PRODUCTION_LOCATION_NAME", "KAFKA_BROKERS", "KAFKA_DIAGNOSTICS_TOPIC", "HTTP_PORT",
		"APP_NAME", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_LOCK_TIMEOUT_MS", "DB_FORCE_IPV4",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.POS.BOMValidationDefault)
	assert.Equal(t, "POS BOM Production", cfg.POS.ProductionLocationName)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "pos-bom.diagnostics", cfg.Kafka.DiagnosticsTopic)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_POSYKafka(t *testing.T) {
	clearEnv(t)
	t.Setenv("POS_BOM_VALIDATION_DEFAULT", "false")
	t.Setenv("POS_PRODUCTION_LOCATION_NAME", "Cocina")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.POS.BOMValidationDefault)
	assert.Equal(t, "Cocina", cfg.POS.ProductionLocationName)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_PoolDeBaseDeDatos(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pos-bom", cfg.DB.AppName)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.Equal(t, 5000, cfg.DB.LockTimeoutMS)
	assert.False(t, cfg.DB.ForceIPv4)

	t.Setenv("APP_NAME", "caja-norte")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_LOCK_TIMEOUT_MS", "0")
	t.Setenv("DB_FORCE_IPV4", "true")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "caja-norte", cfg.DB.AppName)
	assert.Equal(t, 4, cfg.DB.MaxConns)
	assert.Zero(t, cfg.DB.LockTimeoutMS)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_Errores(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "pos_bom", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/pos_bom?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
