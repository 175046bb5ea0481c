package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeJSON(t *testing.T) {
	doc := []byte(`{"uid":"u1","status":"pending","total_amount":25.5}`)

	merged, err := MergeJSON(doc, map[string]any{
		"status": "qr_attached",
		"qr_url": "https://storage.googleapis.com/b/qr-codes/x.png",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"uid":"u1",
		"status":"qr_attached",
		"total_amount":25.5,
		"qr_url":"https://storage.googleapis.com/b/qr-codes/x.png"
	}`, string(merged))
}

func TestMergeJSON_NotAnObject(t *testing.T) {
	_, err := MergeJSON([]byte(`[1,2]`), map[string]any{"a": 1})
	assert.Error(t, err)
}
