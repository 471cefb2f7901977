package registry

import (
	"reflect"
	"testing"

	"github.com/regent-cli/regent/internal/models"
)

func TestSummarize(t *testing.T) {
	commands := map[string]models.CommandRecord{
		"dev:up":   {Name: "dev:up", Kind: models.KindShell, Tags: []string{"docker", "dev"}},
		"dev:down": {Name: "dev:down", Kind: models.KindShell, Tags: []string{"docker"}},
		"serve":    {Name: "serve", Kind: models.KindModule},
		"version":  {Name: "version", Kind: models.KindCallable},
	}

	stats := Summarize(commands)

	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.ByKind[models.KindShell] != 2 || stats.ByKind[models.KindModule] != 1 || stats.ByKind[models.KindCallable] != 1 {
		t.Errorf("ByKind = %v", stats.ByKind)
	}
	if stats.ByNamespace["dev"] != 2 || stats.ByNamespace["(root)"] != 2 {
		t.Errorf("ByNamespace = %v", stats.ByNamespace)
	}
	if !reflect.DeepEqual(stats.Tags, []string{"dev", "docker"}) {
		t.Errorf("Tags = %v, want sorted distinct set", stats.Tags)
	}
}
