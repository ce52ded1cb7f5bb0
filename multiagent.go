package anypop

import (
	"fmt"

	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// MADDPGConfig configures a MADDPG agent group.
type MADDPGConfig struct {
	// ObservationSpaces and ActionSpaces describe each
	// sub-agent's spaces, keyed by agent ID.
	ObservationSpaces SpaceMap
	ActionSpaces      SpaceMap
	OneHot            bool
	Index             int
	NetConfig         *NetConfig

	NAgents  int
	AgentIDs []string

	MaxAction float64
	MinAction float64

	OUNoise      bool
	ExplNoise    float64
	MeanNoise    float64
	Theta        float64
	DT           float64
	VectNoiseDim int

	BatchSize int
	LRActor   float64
	LRCritic  float64
	LearnStep int
	Gamma     float64
	Tau       float64

	DiscreteActions bool

	// Actors and Critics, if non-nil, override the
	// per-agent networks built from NetConfig.
	Actors  map[string]anyrnn.Block
	Critics map[string]anyrnn.Block

	Creator anyvec.Creator
}

// MADDPG is a population member running multi-agent DDPG
// with centralized critics.
type MADDPG struct {
	agentCore

	ObservationSpaces SpaceMap
	ActionSpaces      SpaceMap
	OneHot            bool

	NAgents  int
	AgentIDs []string

	MaxAction float64
	MinAction float64

	OUNoise      bool
	ExplNoise    float64
	MeanNoise    float64
	Theta        float64
	DT           float64
	VectNoiseDim int

	BatchSize int
	LRActor   float64
	LRCritic  float64
	LearnStep int
	Gamma     float64
	Tau       float64

	DiscreteActions bool

	// Actors maps each agent ID to its policy network.
	Actors map[string]anyrnn.Block

	// Critics maps each agent ID to its centralized
	// critic, which sees every agent's observation and
	// action.
	Critics map[string]anyrnn.Block
}

// NewMADDPG creates a MADDPG agent group.
func NewMADDPG(cfg *MADDPGConfig) (agent *MADDPG, err error) {
	defer essentials.AddCtxTo("create MADDPG", &err)
	if err := validateAgentIDs(cfg.NAgents, cfg.AgentIDs,
		cfg.ObservationSpaces, cfg.ActionSpaces); err != nil {
		return nil, err
	}
	actors, err := buildMultiActors(cfg.Creator, cfg.NetConfig, cfg.Actors,
		cfg.AgentIDs, cfg.ObservationSpaces, cfg.ActionSpaces, cfg.OneHot)
	if err != nil {
		return nil, err
	}
	critics, err := buildMultiCritics(cfg.Creator, cfg.NetConfig, cfg.Critics,
		cfg.AgentIDs, cfg.ObservationSpaces, cfg.ActionSpaces, cfg.OneHot)
	if err != nil {
		return nil, err
	}
	return &MADDPG{
		agentCore:         agentCore{algo: AlgoMADDPG, index: cfg.Index},
		ObservationSpaces: cfg.ObservationSpaces,
		ActionSpaces:      cfg.ActionSpaces,
		OneHot:            cfg.OneHot,
		NAgents:           cfg.NAgents,
		AgentIDs:          cfg.AgentIDs,
		MaxAction:         cfg.MaxAction,
		MinAction:         cfg.MinAction,
		OUNoise:           cfg.OUNoise,
		ExplNoise:         cfg.ExplNoise,
		MeanNoise:         cfg.MeanNoise,
		Theta:             cfg.Theta,
		DT:                cfg.DT,
		VectNoiseDim:      cfg.VectNoiseDim,
		BatchSize:         cfg.BatchSize,
		LRActor:           cfg.LRActor,
		LRCritic:          cfg.LRCritic,
		LearnStep:         cfg.LearnStep,
		Gamma:             cfg.Gamma,
		Tau:               cfg.Tau,
		DiscreteActions:   cfg.DiscreteActions,
		Actors:            actors,
		Critics:           critics,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (m *MADDPG) InspectAttributes() map[string]interface{} {
	return inspectAttributes(m)
}

// Networks returns the agent group's networks for
// checkpointing, actors first, ordered by agent ID.
func (m *MADDPG) Networks() []anyrnn.Block {
	var res []anyrnn.Block
	for _, id := range m.AgentIDs {
		res = append(res, m.Actors[id])
	}
	for _, id := range m.AgentIDs {
		res = append(res, m.Critics[id])
	}
	return res
}

// MATD3Config configures a MATD3 agent group. The fields
// match MADDPGConfig plus the delayed policy frequency;
// MATD3 adds a second centralized critic per sub-agent.
type MATD3Config struct {
	ObservationSpaces SpaceMap
	ActionSpaces      SpaceMap
	OneHot            bool
	Index             int
	NetConfig         *NetConfig

	NAgents  int
	AgentIDs []string

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

	DiscreteActions bool

	// Actors and Critics, if non-nil, override the
	// per-agent networks built from NetConfig. Critics
	// overrides the first of each twin pair.
	Actors  map[string]anyrnn.Block
	Critics map[string]anyrnn.Block

	Creator anyvec.Creator
}

// MATD3 is a population member running multi-agent TD3
// with twin centralized critics.
type MATD3 struct {
	agentCore

	ObservationSpaces SpaceMap
	ActionSpaces      SpaceMap
	OneHot            bool

	NAgents  int
	AgentIDs []string

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

	DiscreteActions bool

	Actors   map[string]anyrnn.Block
	Critics1 map[string]anyrnn.Block
	Critics2 map[string]anyrnn.Block
}

// NewMATD3 creates a MATD3 agent group.
func NewMATD3(cfg *MATD3Config) (agent *MATD3, err error) {
	defer essentials.AddCtxTo("create MATD3", &err)
	if err := validateAgentIDs(cfg.NAgents, cfg.AgentIDs,
		cfg.ObservationSpaces, cfg.ActionSpaces); err != nil {
		return nil, err
	}
	actors, err := buildMultiActors(cfg.Creator, cfg.NetConfig, cfg.Actors,
		cfg.AgentIDs, cfg.ObservationSpaces, cfg.ActionSpaces, cfg.OneHot)
	if err != nil {
		return nil, err
	}
	critics1, err := buildMultiCritics(cfg.Creator, cfg.NetConfig, cfg.Critics,
		cfg.AgentIDs, cfg.ObservationSpaces, cfg.ActionSpaces, cfg.OneHot)
	if err != nil {
		return nil, err
	}
	critics2, err := buildMultiCritics(cfg.Creator, cfg.NetConfig, nil,
		cfg.AgentIDs, cfg.ObservationSpaces, cfg.ActionSpaces, cfg.OneHot)
	if err != nil {
		return nil, err
	}
	return &MATD3{
		agentCore:         agentCore{algo: AlgoMATD3, index: cfg.Index},
		ObservationSpaces: cfg.ObservationSpaces,
		ActionSpaces:      cfg.ActionSpaces,
		OneHot:            cfg.OneHot,
		NAgents:           cfg.NAgents,
		AgentIDs:          cfg.AgentIDs,
		MaxAction:         cfg.MaxAction,
		MinAction:         cfg.MinAction,
		OUNoise:           cfg.OUNoise,
		ExplNoise:         cfg.ExplNoise,
		MeanNoise:         cfg.MeanNoise,
		Theta:             cfg.Theta,
		DT:                cfg.DT,
		VectNoiseDim:      cfg.VectNoiseDim,
		BatchSize:         cfg.BatchSize,
		LRActor:           cfg.LRActor,
		LRCritic:          cfg.LRCritic,
		LearnStep:         cfg.LearnStep,
		Gamma:             cfg.Gamma,
		Tau:               cfg.Tau,
		PolicyFreq:        cfg.PolicyFreq,
		DiscreteActions:   cfg.DiscreteActions,
		Actors:            actors,
		Critics1:          critics1,
		Critics2:          critics2,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (m *MATD3) InspectAttributes() map[string]interface{} {
	return inspectAttributes(m)
}

// Networks returns the agent group's networks for
// checkpointing, actors first, ordered by agent ID.
func (m *MATD3) Networks() []anyrnn.Block {
	var res []anyrnn.Block
	for _, id := range m.AgentIDs {
		res = append(res, m.Actors[id])
	}
	for _, id := range m.AgentIDs {
		res = append(res, m.Critics1[id], m.Critics2[id])
	}
	return res
}

func validateAgentIDs(nAgents int, ids []string, obs, act SpaceMap) error {
	if nAgents != len(ids) {
		return fmt.Errorf("N_AGENTS is %d but got %d agent IDs", nAgents,
			len(ids))
	}
	for _, id := range ids {
		if obs[id] == nil {
			return fmt.Errorf("no observation space for agent %q", id)
		}
		if act[id] == nil {
			return fmt.Errorf("no action space for agent %q", id)
		}
	}
	return nil
}

func buildMultiActors(c anyvec.Creator, nc *NetConfig,
	custom map[string]anyrnn.Block, ids []string, obs, act SpaceMap,
	oneHot bool) (map[string]anyrnn.Block, error) {
	res := make(map[string]anyrnn.Block, len(ids))
	for _, id := range ids {
		actor, err := buildActor(c, nc, custom[id], obs[id], act[id],
			oneHot, 1)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %s", id, err)
		}
		res[id] = actor
	}
	return res, nil
}

func buildMultiCritics(c anyvec.Creator, nc *NetConfig,
	custom map[string]anyrnn.Block, ids []string, obs, act SpaceMap,
	oneHot bool) (map[string]anyrnn.Block, error) {
	// Centralized critics see every agent's observation
	// and action.
	var in int
	for _, id := range ids {
		in += obs[id].FlatSize(oneHot) + act[id].ActionSize()
	}
	if nc == nil {
		nc = defaultNetConfig
	}
	res := make(map[string]anyrnn.Block, len(ids))
	for _, id := range ids {
		if custom[id] != nil {
			res[id] = custom[id]
			continue
		}
		critic, err := nc.Build(c, in, 1)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %s", id, err)
		}
		res[id] = critic
	}
	return res, nil
}
