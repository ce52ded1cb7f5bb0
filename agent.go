package anypop

import "reflect"

// An Agent is one member of a population: an algorithm
// instance paired with the bookkeeping used for
// evolutionary selection.
//
// Fitness scores and step counts are recorded by the
// external training loop; this package only reads them
// back for reporting.
type Agent interface {
	// Algorithm returns the identifier the agent was
	// created from, e.g. "Rainbow DQN".
	Algorithm() string

	// Index is the agent's position in its population.
	Index() int

	// Fitness returns the recorded fitness scores in
	// order.
	Fitness() []float64

	// Steps returns step counts aligned with Fitness.
	Steps() []int

	// AddFitness appends a fitness score.
	AddFitness(score float64)

	// AddSteps appends a step count.
	AddSteps(steps int)

	// InspectAttributes summarizes the agent's current
	// hyperparameters.
	InspectAttributes() map[string]interface{}
}

// A Population is an ordered collection of agents produced
// by CreatePopulation. Each agent's Index matches its
// position.
type Population []Agent

// agentCore implements the bookkeeping half of Agent and
// is embedded by every algorithm type.
type agentCore struct {
	algo    string
	index   int
	fitness []float64
	steps   []int
}

func (a *agentCore) Algorithm() string {
	return a.algo
}

func (a *agentCore) Index() int {
	return a.index
}

func (a *agentCore) Fitness() []float64 {
	return a.fitness
}

func (a *agentCore) Steps() []int {
	return a.steps
}

func (a *agentCore) AddFitness(score float64) {
	a.fitness = append(a.fitness, score)
}

func (a *agentCore) AddSteps(steps int) {
	a.steps = append(a.steps, steps)
}

// inspectAttributes summarizes an agent's exported scalar
// fields, which together form its hyperparameter set.
func inspectAttributes(agent Agent) map[string]interface{} {
	res := map[string]interface{}{"index": agent.Index()}
	val := reflect.ValueOf(agent).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" || field.Anonymous {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool, reflect.Int, reflect.Float64, reflect.String:
			res[field.Name] = val.Field(i).Interface()
		case reflect.Slice:
			switch field.Type.Elem().Kind() {
			case reflect.Bool, reflect.Int, reflect.Float64, reflect.String:
				res[field.Name] = val.Field(i).Interface()
			}
		}
	}
	return res
}
