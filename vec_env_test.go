package anypop

import (
	"errors"
	"reflect"
	"testing"
)

// countingEnv is an in-memory Env which reports its step
// count as part of each observation.
type countingEnv struct {
	id       int
	steps    int
	resets   int
	doneAt   int
	failStep bool
}

func (c *countingEnv) Reset() ([]float64, error) {
	c.resets++
	c.steps = 0
	return []float64{float64(c.id), 0}, nil
}

func (c *countingEnv) Step(action []float64) ([]float64, float64, bool, error) {
	if c.failStep {
		return nil, 0, false, errors.New("step failed")
	}
	c.steps++
	done := c.doneAt > 0 && c.steps >= c.doneAt
	return []float64{float64(c.id), float64(c.steps)}, action[0], done, nil
}

func countingVecEnv(envs ...*countingEnv) *VecEnv {
	res := &VecEnv{}
	for _, e := range envs {
		res.Envs = append(res.Envs, e)
	}
	return res
}

func TestVecEnvReset(t *testing.T) {
	vec := countingVecEnv(&countingEnv{id: 0}, &countingEnv{id: 1},
		&countingEnv{id: 2})
	obs, err := vec.Reset()
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]float64{{0, 0}, {1, 0}, {2, 0}}
	if !reflect.DeepEqual(obs, expected) {
		t.Errorf("expected %v but got %v", expected, obs)
	}
}

func TestVecEnvStep(t *testing.T) {
	vec := countingVecEnv(&countingEnv{id: 0}, &countingEnv{id: 1})
	if _, err := vec.Reset(); err != nil {
		t.Fatal(err)
	}
	obs, rewards, dones, err := vec.Step([][]float64{{0.5}, {-1}})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(obs, [][]float64{{0, 1}, {1, 1}}) {
		t.Errorf("unexpected observations: %v", obs)
	}
	if !reflect.DeepEqual(rewards, []float64{0.5, -1}) {
		t.Errorf("unexpected rewards: %v", rewards)
	}
	if !reflect.DeepEqual(dones, []bool{false, false}) {
		t.Errorf("unexpected dones: %v", dones)
	}
}

func TestVecEnvAutoReset(t *testing.T) {
	short := &countingEnv{id: 0, doneAt: 1}
	long := &countingEnv{id: 1}
	vec := countingVecEnv(short, long)
	if _, err := vec.Reset(); err != nil {
		t.Fatal(err)
	}
	obs, _, dones, err := vec.Step([][]float64{{1}, {1}})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dones, []bool{true, false}) {
		t.Errorf("unexpected dones: %v", dones)
	}
	// The terminal slot sees the next episode's first
	// observation.
	if !reflect.DeepEqual(obs[0], []float64{0, 0}) {
		t.Errorf("unexpected post-reset observation: %v", obs[0])
	}
	if short.resets != 2 {
		t.Errorf("expected 2 resets but got %d", short.resets)
	}
	if long.resets != 1 {
		t.Errorf("expected 1 reset but got %d", long.resets)
	}
}

func TestVecEnvStepError(t *testing.T) {
	vec := countingVecEnv(&countingEnv{id: 0}, &countingEnv{id: 1,
		failStep: true})
	if _, err := vec.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := vec.Step([][]float64{{1}, {1}}); err == nil {
		t.Error("expected step error to propagate")
	}
}

func TestVecEnvStepCountMismatch(t *testing.T) {
	vec := countingVecEnv(&countingEnv{id: 0}, &countingEnv{id: 1})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched action count")
		}
	}()
	vec.Step([][]float64{{1}})
}
