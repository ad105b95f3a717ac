package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

func TestDistribution_RoundTrip(t *testing.T) {
	for _, d := range domain.Distributions() {
		t.Run(d.String(), func(t *testing.T) {
			parsed, err := domain.ParseDistribution(d.String())
			require.NoError(t, err)
			assert.Equal(t, d, parsed)
		})
	}
}

func TestDistribution_Packages(t *testing.T) {
	want := map[domain.Distribution]bool{
		domain.DistributionInternal: false,
		domain.DistributionExternal: true,
		domain.DistributionLayer:    false,
		domain.DistributionLib:      true,
		domain.DistributionNPM:      true,
		domain.DistributionApp:      true,
	}
	for _, d := range domain.Distributions() {
		assert.Equal(t, want[d], d.Packages(), d.String())
	}
}

func TestParseDistribution_Unknown(t *testing.T) {
	_, err := domain.ParseDistribution("bundle")
	assert.ErrorContains(t, err, domain.ErrInvalidDistribution.Error())
}

func TestParseOutputLayout(t *testing.T) {
	l, err := domain.ParseOutputLayout("")
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutESM, l)

	l, err = domain.ParseOutputLayout("dist")
	require.NoError(t, err)
	assert.Equal(t, "dist-cjs", l.Dir(domain.FormatCJS))
	assert.Equal(t, "dist", l.Dir(domain.FormatESM))

	_, err = domain.ParseOutputLayout("umd")
	assert.ErrorContains(t, err, domain.ErrInvalidOutputLayout.Error())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "es6", domain.FormatESM.ModuleType())
	assert.Equal(t, "commonjs", domain.FormatCJS.ModuleType())
	assert.Equal(t, "module", domain.FormatESM.PackageType())
	assert.Equal(t, "commonjs", domain.FormatCJS.PackageType())
	assert.Equal(t, domain.FormatCJS, domain.FormatESM.Other())
}

func TestIsDefaultAsset(t *testing.T) {
	for _, name := range []string{"README.md", "readme", "LICENSE", "Licence.txt", "license.MD"} {
		assert.True(t, domain.IsDefaultAsset(name), name)
	}
	for _, name := range []string{"README.md.bak", "CHANGELOG.md", "licenses", "docs/README.md"} {
		assert.False(t, domain.IsDefaultAsset(name), name)
	}
}
