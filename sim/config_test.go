package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rr-sim/rr-sim/sim/trace"
)

func TestNewSimConfig_FieldEquivalence(t *testing.T) {
	got := NewSimConfig(4, trace.TraceLevelTransitions)
	want := SimConfig{Quantum: 4, Trace: trace.TraceConfig{Level: trace.TraceLevelTransitions}}
	assert.Equal(t, want, got)
}

func TestNewSimConfig_ZeroValues_NoDefaults(t *testing.T) {
	// Zero-value arguments must NOT inject non-zero defaults
	got := NewSimConfig(0, "")
	assert.Equal(t, SimConfig{}, got)
}

func TestSimConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SimConfig
		wantErr error
		errText string
	}{
		{name: "valid", cfg: NewSimConfig(2, trace.TraceLevelNone)},
		{name: "empty trace level", cfg: NewSimConfig(1, "")},
		{name: "zero quantum", cfg: NewSimConfig(0, trace.TraceLevelNone), wantErr: ErrInvalidQuantum},
		{name: "negative quantum", cfg: NewSimConfig(-3, trace.TraceLevelNone), wantErr: ErrInvalidQuantum},
		{name: "bad trace level", cfg: NewSimConfig(2, "verbose"), errText: "unknown trace level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.errText != "":
				assert.ErrorContains(t, err, tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
