package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"landing_page.html", "marketplace.html", "chat.html", "summary.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
