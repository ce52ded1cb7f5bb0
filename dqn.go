package anypop

import (
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// DQNConfig configures a DQN agent.
type DQNConfig struct {
	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool
	Index            int
	NetConfig        *NetConfig

	BatchSize int
	LR        float64
	LearnStep int
	Gamma     float64
	Tau       float64
	Double    bool

	// Actor, if non-nil, overrides the Q-network built
	// from NetConfig.
	Actor anyrnn.Block

	Creator anyvec.Creator
}

// DQN is a population member running the Deep Q-Network
// algorithm.
type DQN struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool

	BatchSize int
	LR        float64
	LearnStep int
	Gamma     float64
	Tau       float64
	Double    bool

	// Actor is the Q-network.
	Actor anyrnn.Block
}

// NewDQN creates a DQN agent.
func NewDQN(cfg *DQNConfig) (agent *DQN, err error) {
	defer essentials.AddCtxTo("create DQN", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, 1)
	if err != nil {
		return nil, err
	}
	return &DQN{
		agentCore:        agentCore{algo: AlgoDQN, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		OneHot:           cfg.OneHot,
		BatchSize:        cfg.BatchSize,
		LR:               cfg.LR,
		LearnStep:        cfg.LearnStep,
		Gamma:            cfg.Gamma,
		Tau:              cfg.Tau,
		Double:           cfg.Double,
		Actor:            actor,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (d *DQN) InspectAttributes() map[string]interface{} {
	return inspectAttributes(d)
}

// Networks returns the agent's networks for checkpointing.
func (d *DQN) Networks() []anyrnn.Block {
	return []anyrnn.Block{d.Actor}
}

// RainbowDQNConfig configures a Rainbow DQN agent.
type RainbowDQNConfig struct {
	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool
	Index            int
	NetConfig        *NetConfig

	BatchSize int
	LR        float64
	LearnStep int
	Gamma     float64
	Tau       float64
	Beta      float64
	PriorEps  float64
	NumAtoms  int
	VMin      float64
	VMax      float64
	NStep     int

	// Actor, if non-nil, overrides the distributional
	// Q-network built from NetConfig.
	Actor anyrnn.Block

	Creator anyvec.Creator
}

// RainbowDQN is a population member running the Rainbow
// DQN algorithm, a distributional DQN variant with
// prioritized replay and n-step returns.
type RainbowDQN struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool

	BatchSize int
	LR        float64
	LearnStep int
	Gamma     float64
	Tau       float64
	Beta      float64
	PriorEps  float64
	NumAtoms  int
	VMin      float64
	VMax      float64
	NStep     int

	// Actor outputs NumAtoms logits per action.
	Actor anyrnn.Block
}

// NewRainbowDQN creates a Rainbow DQN agent.
func NewRainbowDQN(cfg *RainbowDQNConfig) (agent *RainbowDQN, err error) {
	defer essentials.AddCtxTo("create Rainbow DQN", &err)
	outScale := cfg.NumAtoms
	if outScale < 1 {
		outScale = 1
	}
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, outScale)
	if err != nil {
		return nil, err
	}
	return &RainbowDQN{
		agentCore:        agentCore{algo: AlgoRainbowDQN, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		OneHot:           cfg.OneHot,
		BatchSize:        cfg.BatchSize,
		LR:               cfg.LR,
		LearnStep:        cfg.LearnStep,
		Gamma:            cfg.Gamma,
		Tau:              cfg.Tau,
		Beta:             cfg.Beta,
		PriorEps:         cfg.PriorEps,
		NumAtoms:         cfg.NumAtoms,
		VMin:             cfg.VMin,
		VMax:             cfg.VMax,
		NStep:            cfg.NStep,
		Actor:            actor,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (r *RainbowDQN) InspectAttributes() map[string]interface{} {
	return inspectAttributes(r)
}

// Networks returns the agent's networks for checkpointing.
func (r *RainbowDQN) Networks() []anyrnn.Block {
	return []anyrnn.Block{r.Actor}
}

// CQNConfig configures a CQN agent.
type CQNConfig struct {
	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool
	Index            int
	NetConfig        *NetConfig

	BatchSize int
	LR        float64
	LearnStep int
	Gamma     float64
	Tau       float64
	Double    bool

	// Actor, if non-nil, overrides the Q-network built
	// from NetConfig.
	Actor anyrnn.Block

	Creator anyvec.Creator
}

// CQN is a population member running conservative
// Q-learning.
type CQN struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool

	BatchSize int
	LR        float64
	LearnStep int
	Gamma     float64
	Tau       float64
	Double    bool

	// Actor is the Q-network.
	Actor anyrnn.Block
}

// NewCQN creates a CQN agent.
func NewCQN(cfg *CQNConfig) (agent *CQN, err error) {
	defer essentials.AddCtxTo("create CQN", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, 1)
	if err != nil {
		return nil, err
	}
	return &CQN{
		agentCore:        agentCore{algo: AlgoCQN, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		OneHot:           cfg.OneHot,
		BatchSize:        cfg.BatchSize,
		LR:               cfg.LR,
		LearnStep:        cfg.LearnStep,
		Gamma:            cfg.Gamma,
		Tau:              cfg.Tau,
		Double:           cfg.Double,
		Actor:            actor,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (c *CQN) InspectAttributes() map[string]interface{} {
	return inspectAttributes(c)
}

// Networks returns the agent's networks for checkpointing.
func (c *CQN) Networks() []anyrnn.Block {
	return []anyrnn.Block{c.Actor}
}
