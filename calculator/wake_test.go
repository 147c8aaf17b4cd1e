package calculator

import (
	"errors"
	"testing"

	"windtunnel/model"
)

func TestWakeDragUndisturbed(t *testing.T) {
	velocity := model.Profile{0: 10, 10: 10, 20: 10}
	d, err := WakeDrag(velocity, nil, 10, 100, 1.225)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, d, 0, 1e-12, "no deficit")
}

func TestWakeDragMomentumDeficit(t *testing.T) {
	// unsorted insertion, segments use ascending locations
	velocity := model.Profile{10: 8, 0: 8, -5: 10}
	// [-5,0]: U=9 -> 1.225*1*9*5 = 55.125; [0,10]: U=8 -> 1.225*2*8*10 = 196
	d, err := WakeDrag(velocity, nil, 10, 0, 1.225)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, d, 55.125+196, 1e-9, "drag")
}

func TestWakeDragPressureNearest(t *testing.T) {
	velocity := model.Profile{0: 10, 10: 10}
	// the pressure rake has no probe at 10; 0 and 20 are equally near, the lower wins
	pressure := model.Profile{0: 99, 20: 101}
	d, err := WakeDrag(velocity, pressure, 10, 100, 1.225)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, d, (100-99)*10, 1e-12, "pressure term")
}

func TestWakeDragInsufficientPoints(t *testing.T) {
	if _, err := WakeDrag(model.Profile{0: 1}, nil, 10, 0, 1); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}
	if _, err := WakeDrag(nil, nil, 10, 0, 1); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}
}
