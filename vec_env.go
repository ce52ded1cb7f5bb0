package anypop

import (
	"fmt"
	"sync"

	"github.com/unixpickle/essentials"
	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

// A VecEnv runs multiple environment instances in
// lockstep, exposing batched reset/step semantics over all
// of them.
//
// Every sub-environment is driven on its own goroutine, so
// each call blocks until all instances have responded.
type VecEnv struct {
	// Envs contains the sub-environments, one per slot of
	// the batched calls.
	Envs []Env

	clients []gym.Env
}

// VecEnvOptions configures gym-backed vectorized
// environments.
type VecEnvOptions struct {
	// Render, if true, renders every sub-environment.
	Render bool

	// Wrap, if non-nil, is applied to each sub-environment
	// before vectorization.
	Wrap Wrapper
}

// MakeVecEnvs connects to a gym server at host and runs n
// independent instances of the named environment, each
// backed by its own server-side process.
//
// If any sub-environment fails to construct, the ones
// built so far are closed and the failure is returned.
func MakeVecEnvs(host, envName string, n int, opts *VecEnvOptions) (vec *VecEnv,
	err error) {
	defer essentials.AddCtxTo("make vectorized envs", &err)
	if n <= 0 {
		return nil, fmt.Errorf("non-positive env count: %d", n)
	}
	if opts == nil {
		opts = &VecEnvOptions{}
	}
	res := &VecEnv{}
	for i := 0; i < n; i++ {
		client, err := gym.Make(host, envName)
		if err != nil {
			res.Close()
			return nil, err
		}
		env, err := GymEnv(client, opts.Render)
		if err != nil {
			client.Close()
			res.Close()
			return nil, err
		}
		if opts.Wrap != nil {
			env = opts.Wrap(env)
		}
		res.Envs = append(res.Envs, env)
		res.clients = append(res.clients, client)
	}
	return res, nil
}

// MakeSkillVecEnvs is like MakeVecEnvs, but applies skill
// to every sub-environment before vectorization.
func MakeSkillVecEnvs(host, envName string, skill Wrapper,
	n int) (*VecEnv, error) {
	return MakeVecEnvs(host, envName, n, &VecEnvOptions{Wrap: skill})
}

// NumEnvs returns the number of sub-environments.
func (v *VecEnv) NumEnvs() int {
	return len(v.Envs)
}

// Reset resets every sub-environment in parallel and
// returns one observation per instance.
func (v *VecEnv) Reset() (obs [][]float64, err error) {
	defer essentials.AddCtxTo("reset vectorized envs", &err)
	obs = make([][]float64, len(v.Envs))
	errs := make([]error, len(v.Envs))
	var wg sync.WaitGroup
	for i, e := range v.Envs {
		wg.Add(1)
		go func(i int, e Env) {
			defer wg.Done()
			obs[i], errs[i] = e.Reset()
		}(i, e)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return obs, nil
}

// Step advances every sub-environment by one step in
// parallel. It expects one action per sub-environment.
//
// A sub-environment which reports a terminal step is reset
// immediately; its returned observation is the first
// observation of the next episode, with dones marking the
// episode boundary.
func (v *VecEnv) Step(actions [][]float64) (obs [][]float64, rewards []float64,
	dones []bool, err error) {
	if len(actions) != len(v.Envs) {
		panic(fmt.Sprintf("got %d actions for %d envs", len(actions),
			len(v.Envs)))
	}
	defer essentials.AddCtxTo("step vectorized envs", &err)
	obs = make([][]float64, len(v.Envs))
	rewards = make([]float64, len(v.Envs))
	dones = make([]bool, len(v.Envs))
	errs := make([]error, len(v.Envs))
	var wg sync.WaitGroup
	for i, e := range v.Envs {
		wg.Add(1)
		go func(i int, e Env) {
			defer wg.Done()
			obs[i], rewards[i], dones[i], errs[i] = e.Step(actions[i])
			if errs[i] == nil && dones[i] {
				obs[i], errs[i] = e.Reset()
			}
		}(i, e)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, nil, nil, e
		}
	}
	return obs, rewards, dones, nil
}

// Close closes every gym-backed sub-environment, returning
// the first error encountered.
func (v *VecEnv) Close() error {
	var firstErr error
	for _, c := range v.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
