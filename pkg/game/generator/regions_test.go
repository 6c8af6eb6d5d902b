package generator

import (
	"errors"
	"testing"

	"areagen/pkg/engine/world"
)

// testMaze is 6x4 coarse cells of 2x2 tiles:
//
//	######
//	#rr-d#
//	#rr###
//	######
func testMaze() *Maze {
	m := NewMaze(6, 4, 2)
	m.AddRoom(world.R(1, 1, 2, 2))
	m.SetRegion(3, 1, RegionCorridor)
	m.SetRegion(4, 1, RegionDoorway)
	return m
}

func TestCheckCoords(t *testing.T) {
	m := testMaze()
	rooms := NewRegionKinds(RegionRoom)
	open := OpenRegionKinds()

	tests := []struct {
		name   string
		kinds  RegionKinds
		p1, p2 world.Point
		want   bool
	}{
		{"whole room", rooms, world.Pt(1, 1), world.Pt(2, 2), true},
		{"single cell", rooms, world.Pt(2, 2), world.Pt(2, 2), true},
		{"room plus corridor", rooms, world.Pt(1, 1), world.Pt(3, 1), false},
		{"room plus corridor, open kinds", open, world.Pt(1, 1), world.Pt(4, 1), true},
		{"touches a wall", open, world.Pt(2, 1), world.Pt(3, 2), false},
		{"out of range low", open, world.Pt(-1, 1), world.Pt(1, 1), false},
		{"out of range high", NewRegionKinds(AllRegionKinds()...), world.Pt(5, 3), world.Pt(6, 3), false},
		{"swapped corners", rooms, world.Pt(2, 2), world.Pt(1, 1), true},
		{"empty set", NewRegionKinds(), world.Pt(1, 1), world.Pt(1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kinds.CheckCoords(m, tt.p1, tt.p2); got != tt.want {
				t.Errorf("CheckCoords(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestTileChecked(t *testing.T) {
	m := testMaze()
	rooms := NewRegionKinds(RegionRoom)

	tests := []struct {
		tiles world.Rect
		want  bool
	}{
		{world.R(2, 2, 4, 4), true},   // exactly the room
		{world.R(3, 3, 1, 1), true},   // one tile inside
		{world.R(2, 2, 5, 1), false},  // reaches the corridor at tile x=6
		{world.R(1, 2, 2, 2), false},  // reaches the wall at tile x=1
		{world.R(-1, 2, 4, 1), false}, // negative tiles map below zero
		{world.R(2, 2, 0, 0), false},  // empty footprint
	}

	for _, tt := range tests {
		if got := rooms.TileChecked(m, tt.tiles); got != tt.want {
			t.Errorf("TileChecked(%v) = %v, want %v", tt.tiles, got, tt.want)
		}
	}
}

func TestParseRegionKinds(t *testing.T) {
	rk, err := ParseRegionKinds([]string{"room", "doorway"})
	if err != nil {
		t.Fatalf("ParseRegionKinds error = %v", err)
	}
	if !rk.Has(RegionRoom) || !rk.Has(RegionDoorway) || rk.Has(RegionCorridor) {
		t.Errorf("ParseRegionKinds = %v, want {room,doorway}", rk)
	}

	rk, _ = ParseRegionKinds(nil)
	if rk.Has(RegionWall) || rk.Len() != 3 {
		t.Errorf("ParseRegionKinds(nil) = %v, want every open kind", rk)
	}

	if _, err := ParseRegionKinds([]string{"lava"}); !errors.Is(err, world.ErrInvalidData) {
		t.Errorf("ParseRegionKinds(lava) error = %v, want ErrInvalidData", err)
	}
}

func TestMaze_Transforms(t *testing.T) {
	m := NewMaze(10, 10, 3)
	if got := m.ToRegion(5, 9); got != world.Pt(1, 3) {
		t.Errorf("ToRegion(5, 9) = %v, want (1,3)", got)
	}
	if got := m.ToRegion(-1, 0); got != world.Pt(-1, 0) {
		t.Errorf("ToRegion(-1, 0) = %v, want (-1,0)", got)
	}
	if got := m.TileRect(world.R(1, 2, 2, 1)); got != world.R(3, 6, 6, 3) {
		t.Errorf("TileRect = %v, want [3,6 6x3]", got)
	}
}
