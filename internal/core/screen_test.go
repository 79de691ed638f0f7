package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.SetColor(2, 3, '@', ColorYellow)
	if c := s.GetCell(2, 3); c.Rune != '@' || c.Color != ColorYellow {
		t.Errorf("GetCell(2, 3) = %+v, expected yellow @", c)
	}

	// Out of bounds is silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColor(0, -1, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.GetCell(0, 100).Rune != ' ' {
		t.Error("out-of-bounds reads should return a blank")
	}
}

func TestScreenClearAndResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColor(1, 1, '#', ColorGray)
	s.Clear()
	if s.GetCell(1, 1) != (Cell{Rune: ' '}) {
		t.Errorf("Clear left %+v", s.GetCell(1, 1))
	}

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Errorf("Resize: %dx%d, expected 6x3", s.Width(), s.Height())
	}
	s.Resize(-3, 2)
	if s.Width() != 0 {
		t.Errorf("negative width kept: %d", s.Width())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawTextColor(1, 0, "Lv 1 ×2", ColorCyan)
	if got := s.Row(0); got != " Lv 1 ×2    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(6, 0).Color != ColorCyan {
		t.Error("multibyte rune lost its colour")
	}

	s.DrawTextCentered(1, "GO", ColorRed)
	if s.Get(5, 1) != 'G' || s.Get(6, 1) != 'O' {
		t.Errorf("centred text = %q", s.Row(1))
	}

	// Clipped at the right edge
	s.DrawText(10, 0, "xyz")
	if s.Get(11, 0) != 'y' {
		t.Errorf("clipped text = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorWhite)
	want := []string{"┌───┐", "│   │", "└───┘"}
	for y, line := range want {
		if s.Row(y) != line {
			t.Errorf("Row(%d) = %q, expected %q", y, s.Row(y), line)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')
	got := s.String()
	if got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Error("expected one newline between two rows")
	}
}
