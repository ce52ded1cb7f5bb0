package anypop

import (
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// DDPGConfig configures a DDPG agent.
type DDPGConfig struct {
	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool
	Index            int
	NetConfig        *NetConfig

	MaxAction float64
	MinAction float64

	// OUNoise selects Ornstein-Uhlenbeck exploration noise
	// over Gaussian noise.
	OUNoise   bool
	ExplNoise float64
	MeanNoise float64
	Theta     float64
	DT        float64

	// VectNoiseDim is the number of vectorized
	// environments driving the exploration noise.
	VectNoiseDim int

	BatchSize  int
	LRActor    float64
	LRCritic   float64
	LearnStep  int
	Gamma      float64
	Tau        float64
	PolicyFreq int

	// Actor and Critic, if non-nil, override the networks
	// built from NetConfig.
	Actor  anyrnn.Block
	Critic anyrnn.Block

	Creator anyvec.Creator
}

// DDPG is a population member running Deep Deterministic
// Policy Gradient.
type DDPG struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool

	MaxAction float64
	MinAction float64

	OUNoise      bool
	ExplNoise    float64
	MeanNoise    float64
	Theta        float64
	DT           float64
	VectNoiseDim int

	BatchSize  int
	LRActor    float64
	LRCritic   float64
	LearnStep  int
	Gamma      float64
	Tau        float64
	PolicyFreq int

	Actor  anyrnn.Block
	Critic anyrnn.Block
}

// NewDDPG creates a DDPG agent.
func NewDDPG(cfg *DDPGConfig) (agent *DDPG, err error) {
	defer essentials.AddCtxTo("create DDPG", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, 1)
	if err != nil {
		return nil, err
	}
	critic, err := buildCritic(cfg.Creator, cfg.NetConfig, cfg.Critic,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, false)
	if err != nil {
		return nil, err
	}
	return &DDPG{
		agentCore:        agentCore{algo: AlgoDDPG, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		OneHot:           cfg.OneHot,
		MaxAction:        cfg.MaxAction,
		MinAction:        cfg.MinAction,
		OUNoise:          cfg.OUNoise,
		ExplNoise:        cfg.ExplNoise,
		MeanNoise:        cfg.MeanNoise,
		Theta:            cfg.Theta,
		DT:               cfg.DT,
		VectNoiseDim:     cfg.VectNoiseDim,
		BatchSize:        cfg.BatchSize,
		LRActor:          cfg.LRActor,
		LRCritic:         cfg.LRCritic,
		LearnStep:        cfg.LearnStep,
		Gamma:            cfg.Gamma,
		Tau:              cfg.Tau,
		PolicyFreq:       cfg.PolicyFreq,
		Actor:            actor,
		Critic:           critic,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (d *DDPG) InspectAttributes() map[string]interface{} {
	return inspectAttributes(d)
}

// Networks returns the agent's networks for checkpointing.
func (d *DDPG) Networks() []anyrnn.Block {
	return []anyrnn.Block{d.Actor, d.Critic}
}

// TD3Config configures a TD3 agent. The fields match
// DDPGConfig; TD3 adds a second critic internally.
type TD3Config struct {
	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool
	Index            int
	NetConfig        *NetConfig

	MaxAction float64
	MinAction float64

	OUNoise      bool
	ExplNoise    float64
	MeanNoise    float64
	Theta        float64
	DT           float64
	VectNoiseDim int

	BatchSize  int
	LRActor    float64
	LRCritic   float64
	LearnStep  int
	Gamma      float64
	Tau        float64
	PolicyFreq int

	// Actor and Critic, if non-nil, override the networks
	// built from NetConfig. Critic overrides the first of
	// the twin critics; the second is always built.
	Actor  anyrnn.Block
	Critic anyrnn.Block

	Creator anyvec.Creator
}

// TD3 is a population member running Twin Delayed DDPG.
type TD3 struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool

	MaxAction float64
	MinAction float64

	OUNoise      bool
	ExplNoise    float64
	MeanNoise    float64
	Theta        float64
	DT           float64
	VectNoiseDim int

	BatchSize  int
	LRActor    float64
	LRCritic   float64
	LearnStep  int
	Gamma      float64
	Tau        float64
	PolicyFreq int

	Actor   anyrnn.Block
	Critic1 anyrnn.Block
	Critic2 anyrnn.Block
}

// NewTD3 creates a TD3 agent.
func NewTD3(cfg *TD3Config) (agent *TD3, err error) {
	defer essentials.AddCtxTo("create TD3", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, 1)
	if err != nil {
		return nil, err
	}
	critic1, err := buildCritic(cfg.Creator, cfg.NetConfig, cfg.Critic,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, false)
	if err != nil {
		return nil, err
	}
	critic2, err := buildCritic(cfg.Creator, cfg.NetConfig, nil,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, false)
	if err != nil {
		return nil, err
	}
	return &TD3{
		agentCore:        agentCore{algo: AlgoTD3, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		OneHot:           cfg.OneHot,
		MaxAction:        cfg.MaxAction,
		MinAction:        cfg.MinAction,
		OUNoise:          cfg.OUNoise,
		ExplNoise:        cfg.ExplNoise,
		MeanNoise:        cfg.MeanNoise,
		Theta:            cfg.Theta,
		DT:               cfg.DT,
		VectNoiseDim:     cfg.VectNoiseDim,
		BatchSize:        cfg.BatchSize,
		LRActor:          cfg.LRActor,
		LRCritic:         cfg.LRCritic,
		LearnStep:        cfg.LearnStep,
		Gamma:            cfg.Gamma,
		Tau:              cfg.Tau,
		PolicyFreq:       cfg.PolicyFreq,
		Actor:            actor,
		Critic1:          critic1,
		Critic2:          critic2,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (t *TD3) InspectAttributes() map[string]interface{} {
	return inspectAttributes(t)
}

// Networks returns the agent's networks for checkpointing.
func (t *TD3) Networks() []anyrnn.Block {
	return []anyrnn.Block{t.Actor, t.Critic1, t.Critic2}
}
