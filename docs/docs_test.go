package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCarriesContact(t *testing.T) {
	var doc struct {
		Info struct {
			Contact map[string]string `json:"contact"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	assert.Equal(t, map[string]string{
		"name":  "API Support",
		"url":   "http://example.com/support",
		"email": "support@example.com",
	}, doc.Info.Contact)
}
