package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estagios/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBName:     "estagios",
		DBUser:     "app",
		DBPassword: "s3cret",
		DBSSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=app password=s3cret dbname=estagios sslmode=disable", DSN(cfg))
}

func TestQuoteValue(t *testing.T) {
	assert.Equal(t, "''", quoteValue(""))
	assert.Equal(t, "plain", quoteValue("plain"))
	assert.Equal(t, `'with space'`, quoteValue("with space"))
	assert.Equal(t, `'it\'s'`, quoteValue("it's"))
	assert.Equal(t, `'back\\slash'`, quoteValue(`back\slash`))
}
