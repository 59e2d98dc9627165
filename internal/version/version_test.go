package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/mockscn/internal/version"
)

func TestShort(t *testing.T) {
	assert.NotEmpty(t, version.Short())
	assert.Equal(t, version.Version, version.Short())
}

func TestInfo(t *testing.T) {
	info := version.Info()

	assert.True(t, strings.HasPrefix(info, "mockscn "+version.Version))
	assert.Contains(t, info, runtime.Version())
	assert.Contains(t, info, runtime.GOOS+"/"+runtime.GOARCH)

	for _, field := range []string{"Commit:", "Built:", "Built by:", "Go:", "OS/Arch:"} {
		assert.Contains(t, info, field)
	}
}

func TestInfoUsesLdflagValues(t *testing.T) {
	orig := version.Commit
	t.Cleanup(func() { version.Commit = orig })

	version.Commit = "abc1234"
	assert.Contains(t, version.Info(), "Commit: abc1234")
}
