package output_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/ui/output"
)

func TestProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Profile(os.Stderr), "NO_COLOR forces plain output")

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.Ascii, output.Profile(&bytes.Buffer{}), "buffers are never colored")

	p := output.Profile(os.Stderr)
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
}

func TestNew_BufferStaysPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	out := output.New(&buf)
	styled := out.String("layer ready").Foreground(termenv.RGBColor("#D93025"))
	_, err := out.WriteString(styled.String())

	assert.NoError(t, err)
	assert.Equal(t, "layer ready", buf.String())
}
