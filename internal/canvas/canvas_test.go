package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPercent(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		extent float64
		want   float64
	}{
		{name: "origin", value: 0, extent: Width, want: 0},
		{name: "full width", value: 300, extent: Width, want: 100},
		{name: "half height", value: 100, extent: Height, want: 50},
		{name: "off canvas is not clamped", value: 450, extent: Width, want: 150},
		{name: "negative is not clamped", value: -20, extent: Height, want: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToPercent(tt.value, tt.extent), 1e-9)
		})
	}
}

func TestToLogical(t *testing.T) {
	assert.InDelta(t, 150.0, ToLogical(300, 600, Width), 1e-9)
	assert.InDelta(t, 50.0, ToLogical(100, 400, Height), 1e-9)
	assert.Equal(t, 0.0, ToLogical(10, 0, Width))
}

func TestProject(t *testing.T) {
	box := Project(Point{X: 50, Y: 50}, Size{Width: 200, Height: 40})

	assert.InDelta(t, 50.0/3, box.Left, 1e-9)
	assert.InDelta(t, 25.0, box.Top, 1e-9)
	assert.InDelta(t, 200.0/3, box.Width, 1e-9)
	assert.InDelta(t, 20.0, box.Height, 1e-9)
}

func TestFontSizePercent(t *testing.T) {
	assert.InDelta(t, 8.0, FontSizePercent(DefaultFontSize), 1e-9)
	assert.InDelta(t, 16.0, FontSizePercent(32), 1e-9)
}

func TestRotateTransform(t *testing.T) {
	assert.Equal(t, "rotate(0deg)", RotateTransform(0))
	assert.Equal(t, "rotate(45deg)", RotateTransform(45))
	assert.Equal(t, "rotate(-720.5deg)", RotateTransform(-720.5))
}

func TestRotatedBounds(t *testing.T) {
	tests := []struct {
		name     string
		degrees  float64
		wantMin  Point
		wantSize Size
	}{
		{
			name:     "no rotation",
			degrees:  0,
			wantMin:  Point{X: 10, Y: 20},
			wantSize: Size{Width: 40, Height: 20},
		},
		{
			name:     "quarter turn swaps extents",
			degrees:  90,
			wantMin:  Point{X: 20, Y: 10},
			wantSize: Size{Width: 20, Height: 40},
		},
		{
			name:     "full turns are identity",
			degrees:  720,
			wantMin:  Point{X: 10, Y: 20},
			wantSize: Size{Width: 40, Height: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotSize := RotatedBounds(Point{X: 10, Y: 20}, Size{Width: 40, Height: 20}, tt.degrees)
			assert.InDelta(t, tt.wantMin.X, gotMin.X, 1e-9)
			assert.InDelta(t, tt.wantMin.Y, gotMin.Y, 1e-9)
			assert.InDelta(t, tt.wantSize.Width, gotSize.Width, 1e-9)
			assert.InDelta(t, tt.wantSize.Height, gotSize.Height, 1e-9)
		})
	}
}

func TestOverflows(t *testing.T) {
	assert.False(t, Overflows(Point{X: 0, Y: 0}, Size{Width: 300, Height: 200}, 0))
	assert.True(t, Overflows(Point{X: 250, Y: 0}, Size{Width: 100, Height: 20}, 0))
	assert.True(t, Overflows(Point{X: 0, Y: 0}, Size{Width: 300, Height: 200}, 45))
	assert.False(t, Overflows(Point{X: 100, Y: 80}, Size{Width: 40, Height: 40}, 30))
}
