package clip

import (
	"testing"

	"github.com/paulmach/orb"

	"geoview/internal/geom"
)

var window = geom.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		a, b   orb.Point
		wantA  orb.Point
		wantB  orb.Point
		status Status
	}{
		{"crossing both sides", orb.Point{-5, 5}, orb.Point{15, 5}, orb.Point{0, 5}, orb.Point{10, 5}, ClippedFirst | ClippedLast},
		{"fully outside", orb.Point{20, 20}, orb.Point{30, 30}, orb.Point{20, 20}, orb.Point{30, 30}, Outside},
		{"fully inside", orb.Point{2, 2}, orb.Point{8, 8}, orb.Point{2, 2}, orb.Point{8, 8}, Inside},
		{"leaving through top", orb.Point{5, 5}, orb.Point{5, 20}, orb.Point{5, 5}, orb.Point{5, 10}, ClippedLast},
		{"entering from left", orb.Point{-10, 0}, orb.Point{10, 10}, orb.Point{0, 5}, orb.Point{10, 10}, ClippedFirst},
		{"on boundary", orb.Point{0, 0}, orb.Point{0, 10}, orb.Point{0, 0}, orb.Point{0, 10}, Inside},
		{"diagonal corner miss", orb.Point{-5, 8}, orb.Point{3, 16}, orb.Point{-5, 8}, orb.Point{3, 16}, Outside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, st := Line(tt.a, tt.b, window)
			if st != tt.status {
				t.Errorf("status = %v, want %v", st, tt.status)
			}
			if a != tt.wantA || b != tt.wantB {
				t.Errorf("Line() = %v %v, want %v %v", a, b, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	if got := (ClippedFirst | ClippedLast).String(); got != "ClippedFirst|ClippedLast" {
		t.Errorf("String() = %q", got)
	}
	if got := Unknown.String(); got != "Unknown" {
		t.Errorf("String() = %q", got)
	}
}

func TestLineStringSplits(t *testing.T) {
	tests := []struct {
		name  string
		ls    orb.LineString
		spans int
	}{
		{"inside", orb.LineString{{1, 1}, {2, 2}, {3, 1}}, 1},
		{"outside", orb.LineString{{11, 11}, {12, 15}, {20, 20}}, 0},
		{"out and back in", orb.LineString{{1, 5}, {15, 5}, {15, 8}, {5, 8}}, 2},
		{"in out in out in", orb.LineString{{2, 2}, {12, 2}, {12, 4}, {2, 4}, {2, 12}, {4, 12}, {4, 6}}, 3},
		{"passes through", orb.LineString{{-5, 5}, {15, 5}}, 1},
		{"single point", orb.LineString{{5, 5}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineString(tt.ls, window)
			if len(got) != tt.spans {
				t.Fatalf("spans = %d, want %d (%v)", len(got), tt.spans, got)
			}
			for i, part := range got {
				if len(part) < 2 {
					t.Errorf("part %d has %d points", i, len(part))
				}
				for _, p := range part {
					if p[0] < 0 || p[0] > 10 || p[1] < 0 || p[1] > 10 {
						t.Errorf("part %d point %v outside window", i, p)
					}
				}
			}
		})
	}
}

func TestLineStringStitchesInsideRuns(t *testing.T) {
	got := LineString(orb.LineString{{1, 5}, {15, 5}, {15, 8}, {5, 8}}, window)
	want := []orb.LineString{{{1, 5}, {10, 5}}, {{10, 8}, {5, 8}}}
	if len(got) != len(want) {
		t.Fatalf("LineString() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("part %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRingCloses(t *testing.T) {
	r := orb.Ring{{2, 2}, {8, 2}, {8, 8}, {2, 8}}
	got := Ring(r, window)
	if len(got) != 1 || len(got[0]) != 5 {
		t.Fatalf("Ring() = %v", got)
	}
	if got[0][0] != got[0][4] {
		t.Errorf("ring not closed: %v", got[0])
	}
}

func TestSegmentHits(t *testing.T) {
	if !SegmentHits(orb.Point{-1, -1}, orb.Point{11, 11}, window) {
		t.Error("diagonal should hit")
	}
	if SegmentHits(orb.Point{-1, 11}, orb.Point{-1, 20}, window) {
		t.Error("outside segment should miss")
	}
}
