package services

import (
	"net/url"
	"strings"
)

// componentUnescaper undoes the escapes url.QueryEscape applies to characters
// that encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s like the browser function of the same name.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// encodeMailto is EncodeURIComponent with spaces as '+', which mail clients
// accept in mailto query values.
func encodeMailto(s string) string {
	return strings.ReplaceAll(EncodeURIComponent(s), "%20", "+")
}
