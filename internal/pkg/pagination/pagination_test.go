package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(queryContext(t, ""))
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultSize, q.Size)
}

func TestFromContextParsesParams(t *testing.T) {
	q := FromContext(queryContext(t, "page=3&limit=20"))
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Size)
	assert.Equal(t, 40, q.Offset())
}

func TestFromContextClampsBadInput(t *testing.T) {
	q := FromContext(queryContext(t, "page=-1&limit=0"))
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultSize, q.Size)

	q = FromContext(queryContext(t, "page=abc&limit=9999"))
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, MaxSize, q.Size)
}
