package anypop

import (
	"reflect"
	"testing"

	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

func TestSpaceSizes(t *testing.T) {
	box := &Space{Type: Box, Shape: []int{3, 4}}
	if size := box.FlatSize(false); size != 12 {
		t.Errorf("expected flat size 12 but got %d", size)
	}
	if size := box.ActionSize(); size != 12 {
		t.Errorf("expected action size 12 but got %d", size)
	}
	disc := &Space{Type: Discrete, N: 5}
	if size := disc.FlatSize(false); size != 1 {
		t.Errorf("expected flat size 1 but got %d", size)
	}
	if size := disc.FlatSize(true); size != 5 {
		t.Errorf("expected one-hot flat size 5 but got %d", size)
	}
	if size := disc.ActionSize(); size != 5 {
		t.Errorf("expected action size 5 but got %d", size)
	}
}

func TestSpaceFromGym(t *testing.T) {
	box, err := SpaceFromGym(&gym.Space{
		Type:  "Box",
		Shape: []int{2},
		Low:   []float64{-1, -1},
		High:  []float64{1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := &Space{
		Type:  Box,
		Shape: []int{2},
		Low:   []float64{-1, -1},
		High:  []float64{1, 1},
	}
	if !reflect.DeepEqual(box, expected) {
		t.Errorf("expected %v but got %v", expected, box)
	}

	disc, err := SpaceFromGym(&gym.Space{Type: "Discrete", N: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(disc, &Space{Type: Discrete, N: 3}) {
		t.Errorf("unexpected discrete space: %v", disc)
	}

	if _, err := SpaceFromGym(&gym.Space{Type: "MultiBinary"}); err == nil {
		t.Error("expected error for unsupported space")
	}
}

func TestSpaceSpecs(t *testing.T) {
	single := &Space{Type: Discrete, N: 2}
	if s, err := singleSpace(single, "observation space"); err != nil ||
		s != single {
		t.Errorf("singleSpace: got %v, %v", s, err)
	}
	if _, err := singleSpace(SpaceMap{"a": single}, "observation space"); err == nil {
		t.Error("expected error for map passed as single space")
	}
	if _, err := singleSpace(nil, "observation space"); err == nil {
		t.Error("expected error for nil space")
	}

	m := SpaceMap{"agent_0": single}
	if got, err := spacesByAgent(m, "action spaces"); err != nil ||
		!reflect.DeepEqual(got, m) {
		t.Errorf("spacesByAgent: got %v, %v", got, err)
	}
	if _, err := spacesByAgent(single, "action spaces"); err == nil {
		t.Error("expected error for single space passed as map")
	}
}
