package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeXML(""))
}

func TestEscapeXML_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	assert.Equal(t, text, EscapeXML(text))
}

func TestEscapeXML_Ampersand(t *testing.T) {
	assert.Equal(t, "Tools &amp; Platforms", EscapeXML("Tools & Platforms"))
}

func TestEscapeXML_AngleBrackets(t *testing.T) {
	assert.Equal(t, "&lt;dev&gt;", EscapeXML("<dev>"))
}

func TestEscapeXML_Quotes(t *testing.T) {
	assert.Equal(t, "said &quot;ship it&quot;", EscapeXML(`said "ship it"`))
	assert.Equal(t, "it&apos;s done", EscapeXML("it's done"))
}

func TestEscapeXML_MixedContent(t *testing.T) {
	result := EscapeXML(`Scaled <service> to 1M+ req/day & 99.9% uptime`)
	assert.Equal(t, "Scaled &lt;service&gt; to 1M+ req/day &amp; 99.9% uptime", result)
}

func TestEscapeXML_UnicodeCharacters(t *testing.T) {
	text := "résumé with unicode: α β γ"
	assert.Equal(t, text, EscapeXML(text))
}
