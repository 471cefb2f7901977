package resolve

import (
	"errors"
	"testing"

	"github.com/regent-cli/regent/internal/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "build"},
		{name: "namespaced", input: "dev:up"},
		{name: "dashes and underscores", input: "my-cmd_2"},
		{name: "dotted", input: "a.b"},
		{name: "empty", input: "", wantErr: true},
		{name: "space", input: "my cmd", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "unicode", input: "café", wantErr: true},
		{name: "double colon", input: "a::b", wantErr: true},
		{name: "leading colon", input: ":a", wantErr: true},
		{name: "trailing colon", input: "a:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateName(%q) = nil, want error", tt.input)
				}
				var invalidErr *models.InvalidNameError
				if !errors.As(err, &invalidErr) {
					t.Errorf("ValidateName(%q) = %T, want InvalidNameError", tt.input, err)
				}
			} else if err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.input, err)
			}
		})
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		target string
		want   models.Kind
	}{
		{target: "pkg.mod:func", want: models.KindCallable},
		{target: "mod:main", want: models.KindCallable},
		{target: "pkg.mod", want: models.KindModule},
		{target: "a.b.c", want: models.KindModule},
		{target: "ls", want: models.KindShell},
		{target: "echo hello", want: models.KindShell},
		{target: "./script.sh", want: models.KindShell},
		{target: "a:b:c", want: models.KindShell},      // two colons
		{target: "pkg.mod: func", want: models.KindShell}, // whitespace
	}

	for _, tt := range tests {
		if got := InferKind(tt.target); got != tt.want {
			t.Errorf("InferKind(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestInferDefaultName(t *testing.T) {
	tests := []struct {
		target string
		kind   models.Kind
		want   string
	}{
		{target: "a.b.c", kind: models.KindModule, want: "c"},
		{target: "tool", kind: models.KindModule, want: "tool"},
		{target: "mod:main", kind: models.KindCallable, want: "main"},
		{target: "a.b.c", kind: models.KindCallable, want: "c"},
		{target: "/usr/bin/ffmpeg", kind: models.KindShell, want: "ffmpeg"},
		{target: "/usr/bin/ffmpeg -i in.mp4", kind: models.KindShell, want: "ffmpeg"},
		{target: "echo hello", kind: models.KindShell, want: "echo"},
		{target: "ls", kind: models.KindShell, want: "ls"},
	}

	for _, tt := range tests {
		if got := InferDefaultName(tt.target, tt.kind); got != tt.want {
			t.Errorf("InferDefaultName(%q, %s) = %q, want %q", tt.target, tt.kind, got, tt.want)
		}
	}
}

func TestIsDottedName(t *testing.T) {
	if !IsDottedName("a.b") {
		t.Error("IsDottedName(a.b) = false")
	}
	if IsDottedName("ab") {
		t.Error("IsDottedName(ab) = true")
	}
}

func testCommands() map[string]models.CommandRecord {
	return map[string]models.CommandRecord{
		"clean": {Name: "clean", Kind: models.KindShell, Target: "make clean"},
		"build": {Name: "build", Kind: models.KindShell, Target: "make", Aliases: []string{"b", "compile"}},
		"serve": {Name: "serve", Kind: models.KindModule, Target: "http.server"},
	}
}

func TestResolve(t *testing.T) {
	commands := testCommands()

	t.Run("exact match", func(t *testing.T) {
		rec, dotted := Resolve(commands, "clean")
		if rec == nil || rec.Name != "clean" {
			t.Fatalf("Resolve(clean) = %v", rec)
		}
		if dotted {
			t.Error("dotted = true for exact match")
		}
	})

	t.Run("alias match", func(t *testing.T) {
		rec, dotted := Resolve(commands, "compile")
		if rec == nil || rec.Name != "build" {
			t.Fatalf("Resolve(compile) = %v, want build", rec)
		}
		if dotted {
			t.Error("dotted = true for alias match")
		}
	})

	t.Run("unregistered dotted name falls back", func(t *testing.T) {
		rec, dotted := Resolve(commands, "some.module")
		if rec != nil {
			t.Fatalf("Resolve(some.module) = %v, want nil", rec)
		}
		if !dotted {
			t.Error("dotted = false, want fallback signal")
		}
	})

	t.Run("unregistered plain name misses", func(t *testing.T) {
		rec, dotted := Resolve(commands, "nope")
		if rec != nil || dotted {
			t.Errorf("Resolve(nope) = (%v, %v), want (nil, false)", rec, dotted)
		}
	})

	t.Run("registered name shadows dotted fallback", func(t *testing.T) {
		withDot := map[string]models.CommandRecord{
			"a.b": {Name: "a.b", Kind: models.KindShell, Target: "ls"},
		}
		rec, dotted := Resolve(withDot, "a.b")
		if rec == nil || dotted {
			t.Errorf("Resolve(a.b) = (%v, %v), want the record", rec, dotted)
		}
	})
}

func TestSuggest(t *testing.T) {
	commands := testCommands()

	got := Suggest(commands, "clen")
	if len(got) == 0 || got[0] != "clean" {
		t.Errorf("Suggest(clen) = %v, want [clean ...]", got)
	}

	unrelated := map[string]models.CommandRecord{
		"xyz": {Name: "xyz", Kind: models.KindShell, Target: "xyz"},
	}
	if got := Suggest(unrelated, "clen"); len(got) != 0 {
		t.Errorf("Suggest(clen) over unrelated names = %v, want empty", got)
	}
}

func TestSuggestCapsAndOrder(t *testing.T) {
	commands := make(map[string]models.CommandRecord)
	for _, name := range []string{"clean", "cleans", "cleaner", "cleanse", "cleanup", "clex", "clead"} {
		commands[name] = models.CommandRecord{Name: name, Kind: models.KindShell, Target: name}
	}

	got := Suggest(commands, "clean")
	if len(got) > MaxSuggestions {
		t.Fatalf("Suggest returned %d names, cap is %d", len(got), MaxSuggestions)
	}
	if len(got) == 0 || got[0] != "clean" {
		t.Errorf("Suggest(clean) = %v, want exact match first", got)
	}
	for i := 1; i < len(got); i++ {
		ri, rj := Ratio("clean", got[i-1]), Ratio("clean", got[i])
		if ri < rj {
			t.Errorf("suggestions out of order: %v", got)
		}
	}
}
