package uricomposer

import "strings"

// Stored picture references carry this placeholder instead of a host, so the
// serving base can be swapped per environment.
const placeholder = "http://catalogbaseurltobereplaced"

type Composer struct {
	BaseURL string
}

func New(baseURL string) *Composer {
	return &Composer{BaseURL: strings.TrimRight(baseURL, "/")}
}

// ComposePicURI turns a stored picture reference into an absolute URL.
func (c *Composer) ComposePicURI(uri string) string {
	if uri == "" {
		return ""
	}
	if strings.HasPrefix(uri, placeholder) {
		return c.BaseURL + strings.TrimPrefix(uri, placeholder)
	}
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	return c.BaseURL + "/" + strings.TrimLeft(uri, "/")
}
