package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
)

func TestTarget(t *testing.T) {
	cfg := config.Default("/home/u", "/opt")
	single := domain.Folders{Source: "/src/", Photo: "/lib/", Video: "/lib/"}
	dual := domain.Folders{Source: "/src/", Photo: "/p/", Video: "/v/", Dual: true}

	cases := []struct {
		name       string
		f          domain.Folders
		kind       domain.MediaKind
		wantBase   string
		wantSuffix string
	}{
		{"single photo", single, domain.KindPhoto, "/lib/", ""},
		{"single video", single, domain.KindVideo, "/lib/", ""},
		{"dual photo", dual, domain.KindPhoto, "/p/", "-kuvat"},
		{"dual video", dual, domain.KindVideo, "/v/", "-videot"},
	}
	for _, tc := range cases {
		base, suffix := Target(tc.f, cfg, tc.kind)
		assert.Equal(t, tc.wantBase, base, tc.name)
		assert.Equal(t, tc.wantSuffix, suffix, tc.name)
	}
}

func TestRoute(t *testing.T) {
	assert.Equal(t, domain.RouteDated, Route(domain.Metadata{Year: "2015", Month: "02"}))
	assert.Equal(t, domain.RouteUnsorted, Route(domain.Metadata{Year: "2015"}))
}
