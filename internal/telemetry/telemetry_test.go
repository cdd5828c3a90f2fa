package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled needs nothing", Config{}, false},
		{"enabled with endpoint", Config{Enabled: true, Endpoint: "localhost:4317", SamplingRate: 1.0}, false},
		{"enabled without endpoint", Config{Enabled: true}, true},
		{"sampling rate too high", Config{SamplingRate: 2}, true},
		{"negative sampling rate", Config{SamplingRate: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	tel, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, tel.Degraded())
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestShutdown_NilReceiver(t *testing.T) {
	var tel *Telemetry
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.False(t, tel.Degraded())
}
