package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	assert.NotNil(t, defaultConfig())
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, time.Duration(0), cfg.Timeout())
	assert.False(t, cfg.AllowInsecureFallback)
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	cfg := Default()
	cfg.DefaultTimeout = "ten seconds"
	err := cfg.Validate()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "default_timeout")
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := Default()
	cfg.Prompt = ""
	assert.NotNil(t, cfg.Validate())
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.DefaultTimeout = "30s"
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}
