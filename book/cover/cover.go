/* Package cover models the cover field of a catalog entry.
 *
 * A stored cover is one text value with three interchangeable shapes:
 * empty, an inline data-URI image, or a reference (absolute URL or a path
 * under the service's static root). Parsing happens once at the boundary
 * instead of prefix sniffing scattered through callers.
 */
package cover

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Kind identifies the shape of a stored cover value
type Kind int

const (
	Empty Kind = iota
	Inline
	Reference
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Inline:
		return "inline"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

const (
	// inlinePrefix marks a self-describing data-URI image
	inlinePrefix = "data:image"
	// schemePrefix marks an absolute URL
	schemePrefix = "http"
)

// Cover is a parsed cover value. Zero value is the empty cover
type Cover struct {
	raw  string
	kind Kind
}

/* Parse classifies a stored cover string.
 * The inline check must run before any path-based check: a base64 payload
 * can itself contain slashes and must never be taken for a relative path.
 */
func Parse(s string) Cover {
	switch {
	case s == "":
		return Cover{}
	case strings.HasPrefix(s, inlinePrefix):
		return Cover{raw: s, kind: Inline}
	default:
		return Cover{raw: s, kind: Reference}
	}
}

// Kind returns the shape of the cover
func (c Cover) Kind() Kind {
	return c.kind
}

// String returns the stored representation unchanged
func (c Cover) String() string {
	return c.raw
}

/* Resolve produces a URL a client can fetch directly.
 * Resolution order, first match wins:
 * empty -> empty; inline image -> unchanged; absolute URL -> unchanged;
 * leading slash -> baseURL + path; bare relative path -> baseURL + "/" + path.
 */
func (c Cover) Resolve(baseURL string) string {
	switch c.kind {
	case Empty:
		return ""
	case Inline:
		return c.raw
	default:
		if strings.HasPrefix(c.raw, schemePrefix) {
			return c.raw
		}
		if strings.HasPrefix(c.raw, "/") {
			return baseURL + c.raw
		}
		return baseURL + "/" + c.raw
	}
}

// Resolve is a convenience for one-shot resolution of a stored string
func Resolve(s, baseURL string) string {
	return Parse(s).Resolve(baseURL)
}

// Decode returns the mimetype and image bytes of an inline cover
func (c Cover) Decode() (string, []byte, error) {
	if c.kind != Inline {
		return "", nil, fmt.Errorf("cover is %s, not inline", c.kind)
	}

	rest, ok := strings.CutPrefix(c.raw, "data:")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI has no payload")
	}
	mimetype, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding image payload: %w", err)
	}
	return mimetype, data, nil
}

// EncodeInline builds an inline cover value from image bytes
func EncodeInline(mimetype string, data []byte) Cover {
	raw := fmt.Sprintf("data:%s;base64,%s", mimetype, base64.StdEncoding.EncodeToString(data))
	return Cover{raw: raw, kind: Inline}
}
