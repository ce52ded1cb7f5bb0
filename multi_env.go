package anypop

import (
	"fmt"
	"sync"

	"github.com/unixpickle/essentials"
)

// A MultiEnv is a parallel multi-agent environment in
// which every agent acts simultaneously.
type MultiEnv interface {
	// AgentIDs lists the agents in the environment.
	AgentIDs() []string

	// Reset starts a new episode and returns one
	// observation per agent ID.
	Reset() (observations map[string][]float64, err error)

	// Step applies one action per agent ID.
	//
	// The info maps carry auxiliary per-agent entries such
	// as "env_defined_action".
	Step(actions map[string][]float64) (observations map[string][]float64,
		rewards map[string]float64, dones map[string]bool,
		info map[string]map[string]interface{}, err error)
}

// A MultiStep is the batched result of stepping a
// MultiVecEnv, with one entry per sub-environment.
type MultiStep struct {
	Observations []map[string][]float64
	Rewards      []map[string]float64
	Dones        []map[string]bool
	Infos        []map[string]map[string]interface{}
}

// A MultiVecEnv runs multiple multi-agent environments in
// lockstep, stepping each on its own goroutine.
type MultiVecEnv struct {
	Envs []MultiEnv
}

// MakeMultiAgentVecEnvs builds n environments with makeEnv
// and vectorizes them.
//
// Construction arguments are forwarded identically to
// every replica through the makeEnv closure. A failure
// from makeEnv is propagated, not retried.
func MakeMultiAgentVecEnvs(makeEnv func() (MultiEnv, error),
	n int) (vec *MultiVecEnv, err error) {
	defer essentials.AddCtxTo("make multi-agent vectorized envs", &err)
	if n <= 0 {
		return nil, fmt.Errorf("non-positive env count: %d", n)
	}
	res := &MultiVecEnv{}
	for i := 0; i < n; i++ {
		env, err := makeEnv()
		if err != nil {
			return nil, err
		}
		res.Envs = append(res.Envs, env)
	}
	return res, nil
}

// NumEnvs returns the number of sub-environments.
func (m *MultiVecEnv) NumEnvs() int {
	return len(m.Envs)
}

// Reset resets every sub-environment in parallel.
func (m *MultiVecEnv) Reset() (obs []map[string][]float64, err error) {
	defer essentials.AddCtxTo("reset multi-agent vectorized envs", &err)
	obs = make([]map[string][]float64, len(m.Envs))
	errs := make([]error, len(m.Envs))
	var wg sync.WaitGroup
	for i, e := range m.Envs {
		wg.Add(1)
		go func(i int, e MultiEnv) {
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
// parallel. It expects one action map per sub-environment.
func (m *MultiVecEnv) Step(actions []map[string][]float64) (step *MultiStep,
	err error) {
	if len(actions) != len(m.Envs) {
		panic(fmt.Sprintf("got %d action maps for %d envs", len(actions),
			len(m.Envs)))
	}
	defer essentials.AddCtxTo("step multi-agent vectorized envs", &err)
	res := &MultiStep{
		Observations: make([]map[string][]float64, len(m.Envs)),
		Rewards:      make([]map[string]float64, len(m.Envs)),
		Dones:        make([]map[string]bool, len(m.Envs)),
		Infos:        make([]map[string]map[string]interface{}, len(m.Envs)),
	}
	errs := make([]error, len(m.Envs))
	var wg sync.WaitGroup
	for i, e := range m.Envs {
		wg.Add(1)
		go func(i int, e MultiEnv) {
			defer wg.Done()
			res.Observations[i], res.Rewards[i], res.Dones[i],
				res.Infos[i], errs[i] = e.Step(actions[i])
		}(i, e)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return res, nil
}
