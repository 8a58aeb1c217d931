package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDoc(t *testing.T) {
	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, p := range []string{"/options", "/stocks/{symbol}/series", "/stocks/series", "/market/movers",
		"/news/sentiment", "/reports/sentiment", "/reports/sentiment/{tickers}", "/files", "/files/{name}",
		"/qa/documents", "/qa/answer", "/health"} {
		assert.Contains(t, doc.Paths, p)
	}
}
