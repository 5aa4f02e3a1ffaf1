package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextVersion(t *testing.T) {
	assert.Equal(t, "1.1", NextVersion("1.0"))
	assert.Equal(t, "1.2", NextVersion("1.1"))
	assert.Equal(t, "2.0", NextVersion("1.9"))
	assert.Equal(t, "10.1", NextVersion("10.0"))
}

func TestNextVersionRestartsOnBadLabel(t *testing.T) {
	assert.Equal(t, "1.0", NextVersion(""))
	assert.Equal(t, "1.0", NextVersion("abc"))
	assert.Equal(t, "1.0", NextVersion("0"))
	assert.Equal(t, "1.0", NextVersion("-2.5"))
}
