package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlbumCoverURL(t *testing.T) {
	a := Album{Images: []Image{{URL: "https://img/640", Width: 640}, {URL: "https://img/64", Width: 64}}}
	assert.Equal(t, "https://img/640", a.CoverURL())
	assert.Equal(t, "", Album{}.CoverURL())
}
