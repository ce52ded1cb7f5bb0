package anypop

import (
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// PPOConfig configures a PPO agent.
type PPOConfig struct {
	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool
	Index            int
	NetConfig        *NetConfig

	DiscreteActions bool

	BatchSize     int
	LR            float64
	LearnStep     int
	Gamma         float64
	GAELambda     float64
	ActionStdInit float64
	ClipCoef      float64
	EntCoef       float64
	VFCoef        float64
	MaxGradNorm   float64
	TargetKL      float64
	UpdateEpochs  int

	// Actor and Critic, if non-nil, override the networks
	// built from NetConfig.
	Actor  anyrnn.Block
	Critic anyrnn.Block

	Creator anyvec.Creator
}

// PPO is a population member running Proximal Policy
// Optimization.
type PPO struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space
	OneHot           bool

	DiscreteActions bool

	BatchSize     int
	LR            float64
	LearnStep     int
	Gamma         float64
	GAELambda     float64
	ActionStdInit float64
	ClipCoef      float64
	EntCoef       float64
	VFCoef        float64
	MaxGradNorm   float64
	TargetKL      float64
	UpdateEpochs  int

	Actor  anyrnn.Block
	Critic anyrnn.Block
}

// NewPPO creates a PPO agent.
func NewPPO(cfg *PPOConfig) (agent *PPO, err error) {
	defer essentials.AddCtxTo("create PPO", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, 1)
	if err != nil {
		return nil, err
	}
	critic, err := buildCritic(cfg.Creator, cfg.NetConfig, cfg.Critic,
		cfg.ObservationSpace, cfg.ActionSpace, cfg.OneHot, true)
	if err != nil {
		return nil, err
	}
	return &PPO{
		agentCore:        agentCore{algo: AlgoPPO, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		OneHot:           cfg.OneHot,
		DiscreteActions:  cfg.DiscreteActions,
		BatchSize:        cfg.BatchSize,
		LR:               cfg.LR,
		LearnStep:        cfg.LearnStep,
		Gamma:            cfg.Gamma,
		GAELambda:        cfg.GAELambda,
		ActionStdInit:    cfg.ActionStdInit,
		ClipCoef:         cfg.ClipCoef,
		EntCoef:          cfg.EntCoef,
		VFCoef:           cfg.VFCoef,
		MaxGradNorm:      cfg.MaxGradNorm,
		TargetKL:         cfg.TargetKL,
		UpdateEpochs:     cfg.UpdateEpochs,
		Actor:            actor,
		Critic:           critic,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (p *PPO) InspectAttributes() map[string]interface{} {
	return inspectAttributes(p)
}

// Networks returns the agent's networks for checkpointing.
func (p *PPO) Networks() []anyrnn.Block {
	return []anyrnn.Block{p.Actor, p.Critic}
}
