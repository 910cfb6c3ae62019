package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestFlyerDormantStaysStill(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	f := NewFlyer(cfg, 60)
	x, y := f.Body().X, f.Body().Y

	for i := 0; i < 10; i++ {
		f.Move(testDt, cfg.Physics.Gravity)
		f.Tick()
	}

	if f.Body().X != x || f.Body().Y != y {
		t.Errorf("Dormant flyer moved from (%f, %f) to (%f, %f)", x, y, f.Body().X, f.Body().Y)
	}
	if f.Rotation() != 0 {
		t.Errorf("Dormant flyer rotated to %f", f.Rotation())
	}
	if f.Flap() {
		t.Error("Flap() should be ignored while dormant")
	}
	if f.Body().VY != 0 {
		t.Errorf("Ignored flap changed VY to %f", f.Body().VY)
	}
}

func TestFlyerStartPosition(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	f := NewFlyer(cfg, 60)

	if f.Body().X != 100 || f.Body().Y != 200 {
		t.Errorf("Flyer should start at (100, 200), got (%f, %f)", f.Body().X, f.Body().Y)
	}
	if f.Body().W != 34 || f.Body().H != 24 {
		t.Errorf("Flyer size = %fx%f, expected 34x24", f.Body().W, f.Body().H)
	}
}

func TestFlyerFallAccelerates(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	f := NewFlyer(cfg, 60)
	f.Activate()

	prev := f.Body().VY
	for i := 0; i < 30; i++ {
		f.Move(testDt, cfg.Physics.Gravity)
		if f.Body().VY <= prev {
			t.Fatalf("Tick %d: VY should strictly increase, was %f now %f", i, prev, f.Body().VY)
		}
		prev = f.Body().VY
	}
}

func TestFlapOverwritesVelocity(t *testing.T) {
	tests := []struct {
		name string
		vy   float64
	}{
		{"falling fast", 300},
		{"at rest", 0},
		{"already rising", -1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFlyer(config.DefaultFlappyConfig(), 60)
			f.Activate()
			f.Body().VY = tc.vy

			if !f.Flap() {
				t.Fatal("Flap() should apply while alive")
			}
			if f.Body().VY != -400 {
				t.Errorf("VY after flap = %f, expected -400", f.Body().VY)
			}
		})
	}
}

func TestFlyerRotation(t *testing.T) {
	f := NewFlyer(config.DefaultFlappyConfig(), 60)
	f.Activate()
	f.Flap()

	// 0.1s at 60 ticks/s is a six tick tween
	for i := 0; i < 6; i++ {
		f.Tick()
	}
	if f.Rotation() != -40 {
		t.Errorf("Rotation after tween = %f, expected -40", f.Rotation())
	}

	f.Tick()
	if f.Rotation() != -37.5 {
		t.Errorf("Rotation should dive by 2.5 after the tween, got %f", f.Rotation())
	}

	for i := 0; i < 100; i++ {
		f.Tick()
	}
	if f.Rotation() != 90 {
		t.Errorf("Rotation should clamp at 90, got %f", f.Rotation())
	}
}

func TestFlyerDeactivateFreezes(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	f := NewFlyer(cfg, 60)
	f.Activate()
	f.Flap()
	f.Move(testDt, cfg.Physics.Gravity)
	f.Tick()

	f.Deactivate()
	x, y, rot := f.Body().X, f.Body().Y, f.Rotation()
	for i := 0; i < 10; i++ {
		f.Move(testDt, cfg.Physics.Gravity)
		f.Tick()
	}

	if f.Body().X != x || f.Body().Y != y {
		t.Errorf("Dead flyer moved from (%f, %f) to (%f, %f)", x, y, f.Body().X, f.Body().Y)
	}
	if f.Rotation() != rot {
		t.Errorf("Dead flyer rotation changed from %f to %f", rot, f.Rotation())
	}

	f.Deactivate()
	if f.Alive() {
		t.Error("Deactivate() should be idempotent")
	}
}
