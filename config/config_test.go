package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parkkaro/park-karo-api/config"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "park-karo")
	os.Setenv("BASE_URL", "http://localhost")
	os.Setenv("PORT", "8080")

	conf := config.New()

	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
	assert.Equal(t, "park-karo", conf.DatabaseName)
	assert.Equal(t, "http://localhost", conf.BaseURL)
	assert.Equal(t, "8080", conf.Port)
}
