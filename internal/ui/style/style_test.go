package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/ui/style"
)

func TestForLevel(t *testing.T) {
	tests := []struct {
		level domain.LogLevel
		want  string
	}{
		{domain.LogLevelDebug, "· compiling"},
		{domain.LogLevelInfo, "compiling"},
		{domain.LogLevelWarn, "! compiling"},
		{domain.LogLevelError, "✗ compiling"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, style.ForLevel(tt.level).Prefix("compiling"))
		})
	}
	assert.Equal(t, style.Failure, style.ForLevel(domain.LogLevelError).Color)
}
