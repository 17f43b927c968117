package levels

import "testing"

func TestDefaultTable(t *testing.T) {
	table := Default()

	if table.Total() == 0 {
		t.Fatal("default table is empty")
	}

	first, ok := table.Get(0)
	if !ok {
		t.Fatal("Get(0) reported absent")
	}
	if first.Pieces != first.Columns*first.Rows {
		t.Errorf("level 0 pieces = %d, want %d", first.Pieces, first.Columns*first.Rows)
	}
	if first.ImageSeed == 0 {
		t.Error("level 0 has no image seed")
	}
}

func TestGetOutOfRange(t *testing.T) {
	table := Default()

	if _, ok := table.Get(-1); ok {
		t.Error("Get(-1) should report absent")
	}
	if _, ok := table.Get(table.Total()); ok {
		t.Error("Get(Total()) should report absent")
	}
}

func TestGetWrapped(t *testing.T) {
	table := Default()

	total := table.Total()
	direct, _ := table.Get(1)
	wrapped := table.GetWrapped(total + 1)
	if wrapped != direct {
		t.Errorf("GetWrapped(%d) = %+v, want level 1 %+v", total+1, wrapped, direct)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no levels", "levels: []"},
		{"piece mismatch", "levels:\n  - {pieces: 5, columns: 2, rows: 2, imageSeed: 1}"},
		{"zero grid", "levels:\n  - {pieces: 0, columns: 0, rows: 2, imageSeed: 1}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Error("Parse accepted invalid level data")
			}
		})
	}
}
