package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest provides the development mode, in which machines read no config files
// and logs stay on the test writer.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
