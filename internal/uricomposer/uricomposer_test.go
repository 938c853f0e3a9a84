package uricomposer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposePicURI(t *testing.T) {
	t.Parallel()
	c := New("http://cdn.test/")

	assert.Equal(t, "", c.ComposePicURI(""))
	assert.Equal(t, "http://cdn.test/images/1.png", c.ComposePicURI("images/1.png"))
	assert.Equal(t, "http://cdn.test/images/1.png", c.ComposePicURI("/images/1.png"))
	assert.Equal(t, "http://cdn.test/images/1.png",
		c.ComposePicURI("http://catalogbaseurltobereplaced/images/1.png"))
	assert.Equal(t, "https://elsewhere.test/pic.png", c.ComposePicURI("https://elsewhere.test/pic.png"))
}
