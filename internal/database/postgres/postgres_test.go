package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "stockflow", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=stockflow sslmode=disable", cfg.DSN())
}
