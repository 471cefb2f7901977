package resolve

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{a: "clean", b: "clean", want: 1.0},
		{a: "", b: "", want: 1.0},
		{a: "a", b: "", want: 0.0},
		{a: "abc", b: "xyz", want: 0.0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	// Typo distance: "clen" shares 4 of 4 letters with "clean".
	if got := Ratio("clen", "clean"); got < SimilarityFloor {
		t.Errorf("Ratio(clen, clean) = %v, want >= %v", got, SimilarityFloor)
	}
	if got := Ratio("clen", "xyz"); got >= SimilarityFloor {
		t.Errorf("Ratio(clen, xyz) = %v, want < %v", got, SimilarityFloor)
	}
}

func TestRatioSymmetry(t *testing.T) {
	pairs := [][2]string{{"clean", "clen"}, {"build", "rebuild"}, {"dev:up", "dev:down"}}
	for _, p := range pairs {
		if Ratio(p[0], p[1]) != Ratio(p[1], p[0]) {
			t.Errorf("Ratio(%q, %q) not symmetric", p[0], p[1])
		}
	}
}
