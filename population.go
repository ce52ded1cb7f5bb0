package anypop

import (
	"errors"
	"sort"

	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
)

// Algorithm identifiers recognized by CreatePopulation.
const (
	AlgoDQN        = "DQN"
	AlgoRainbowDQN = "Rainbow DQN"
	AlgoDDPG       = "DDPG"
	AlgoPPO        = "PPO"
	AlgoCQN        = "CQN"
	AlgoTD3        = "TD3"
	AlgoMADDPG     = "MADDPG"
	AlgoMATD3      = "MATD3"
	AlgoNeuralUCB  = "NeuralUCB"
	AlgoNeuralTS   = "NeuralTS"
)

// A PopulationConfig specifies a population of identically
// configured, independently initialized agents.
type PopulationConfig struct {
	// Algo selects the algorithm, e.g. AlgoDQN.
	Algo string

	// ObservationSpace and ActionSpace describe the
	// environment. Multi-agent algorithms expect SpaceMap
	// values; all others expect a single *Space.
	ObservationSpace SpaceSpec
	ActionSpace      SpaceSpec

	// OneHot requests one-hot encoding of discrete
	// observations.
	OneHot bool

	// NetConfig describes the networks built for each
	// agent. A nil NetConfig means two hidden layers of
	// 64 units.
	NetConfig *NetConfig

	// Hyperparams holds the algorithm's hyperparameters,
	// keyed by their canonical uppercase names.
	Hyperparams Hyperparams

	// ActorNetwork and CriticNetwork, if non-nil, override
	// the networks built from NetConfig for single-agent
	// algorithms. Setting them for a multi-agent algorithm
	// is an error.
	ActorNetwork  anyrnn.Block
	CriticNetwork anyrnn.Block

	// ActorNetworks and CriticNetworks, if non-nil,
	// override the per-agent networks built from NetConfig
	// for multi-agent algorithms, keyed by agent ID.
	ActorNetworks  map[string]anyrnn.Block
	CriticNetworks map[string]anyrnn.Block

	// PopulationSize is the number of agents to create.
	// Zero means one.
	PopulationSize int

	// NumEnvs is the number of vectorized environments the
	// population will train on. It becomes the noise
	// dimension of noise-driven algorithms. Zero means
	// one.
	NumEnvs int

	// Creator determines where agent networks are
	// allocated. A nil Creator uses anyvec32.
	Creator anyvec.Creator
}

func (p *PopulationConfig) creator() anyvec.Creator {
	if p.Creator != nil {
		return p.Creator
	}
	return anyvec32.CurrentCreator()
}

func (p *PopulationConfig) numEnvs() int {
	if p.NumEnvs <= 0 {
		return 1
	}
	return p.NumEnvs
}

func (p *PopulationConfig) singleSpaces() (obs, act *Space, err error) {
	if obs, err = singleSpace(p.ObservationSpace, "observation space"); err != nil {
		return
	}
	act, err = singleSpace(p.ActionSpace, "action space")
	return
}

func (p *PopulationConfig) checkMultiAgentNetworks() error {
	if p.ActorNetwork != nil || p.CriticNetwork != nil {
		return errors.New("multi-agent algorithms take ActorNetworks and " +
			"CriticNetworks keyed by agent ID, not ActorNetwork/CriticNetwork")
	}
	return nil
}

func (p *PopulationConfig) agentSpaces() (obs, act SpaceMap, err error) {
	if obs, err = spacesByAgent(p.ObservationSpace, "observation spaces"); err != nil {
		return
	}
	act, err = spacesByAgent(p.ActionSpace, "action spaces")
	return
}

type agentMaker func(cfg *PopulationConfig, index int) (Agent, error)

var algorithms = map[string]agentMaker{
	AlgoDQN:        makeDQN,
	AlgoRainbowDQN: makeRainbowDQN,
	AlgoDDPG:       makeDDPG,
	AlgoPPO:        makePPO,
	AlgoCQN:        makeCQN,
	AlgoTD3:        makeTD3,
	AlgoMADDPG:     makeMADDPG,
	AlgoMATD3:      makeMATD3,
	AlgoNeuralUCB:  makeNeuralUCB,
	AlgoNeuralTS:   makeNeuralTS,
}

// SupportedAlgorithms lists the recognized algorithm
// identifiers in sorted order.
func SupportedAlgorithms() []string {
	res := make([]string, 0, len(algorithms))
	for name := range algorithms {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// CreatePopulation builds a population of identically
// configured agents, assigning indices 0 through N-1 in
// construction order.
//
// An unrecognized Algo yields an empty population and no
// error; use SupportedAlgorithms to validate identifiers
// up front. Missing hyperparameter keys, bad space
// descriptors, and constructor failures are returned
// unmodified.
func CreatePopulation(cfg *PopulationConfig) (Population, error) {
	maker, ok := algorithms[cfg.Algo]
	if !ok {
		return Population{}, nil
	}
	size := cfg.PopulationSize
	if size <= 0 {
		size = 1
	}
	pop := make(Population, 0, size)
	for i := 0; i < size; i++ {
		agent, err := maker(cfg, i)
		if err != nil {
			return nil, err
		}
		pop = append(pop, agent)
	}
	return pop, nil
}

func makeDQN(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &DQNConfig{
		ObservationSpace: obs,
		ActionSpace:      act,
		OneHot:           cfg.OneHot,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		BatchSize:        r.int("BATCH_SIZE"),
		LR:               r.float("LR"),
		LearnStep:        r.int("LEARN_STEP"),
		Gamma:            r.float("GAMMA"),
		Tau:              r.float("TAU"),
		Double:           r.bool("DOUBLE"),
		Actor:            cfg.ActorNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewDQN(c)
}

func makeRainbowDQN(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &RainbowDQNConfig{
		ObservationSpace: obs,
		ActionSpace:      act,
		OneHot:           cfg.OneHot,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		BatchSize:        r.int("BATCH_SIZE"),
		LR:               r.float("LR"),
		LearnStep:        r.int("LEARN_STEP"),
		Gamma:            r.float("GAMMA"),
		Tau:              r.float("TAU"),
		Beta:             r.float("BETA"),
		PriorEps:         r.float("PRIOR_EPS"),
		NumAtoms:         r.int("NUM_ATOMS"),
		VMin:             r.float("V_MIN"),
		VMax:             r.float("V_MAX"),
		NStep:            r.int("N_STEP"),
		Actor:            cfg.ActorNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewRainbowDQN(c)
}

func makeDDPG(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &DDPGConfig{
		ObservationSpace: obs,
		ActionSpace:      act,
		OneHot:           cfg.OneHot,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		MaxAction:        r.float("MAX_ACTION"),
		MinAction:        r.float("MIN_ACTION"),
		OUNoise:          r.bool("O_U_NOISE"),
		ExplNoise:        r.float("EXPL_NOISE"),
		MeanNoise:        r.float("MEAN_NOISE"),
		Theta:            r.float("THETA"),
		DT:               r.float("DT"),
		VectNoiseDim:     cfg.numEnvs(),
		BatchSize:        r.int("BATCH_SIZE"),
		LRActor:          r.float("LR_ACTOR"),
		LRCritic:         r.float("LR_CRITIC"),
		LearnStep:        r.int("LEARN_STEP"),
		Gamma:            r.float("GAMMA"),
		Tau:              r.float("TAU"),
		PolicyFreq:       r.int("POLICY_FREQ"),
		Actor:            cfg.ActorNetwork,
		Critic:           cfg.CriticNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewDDPG(c)
}

func makePPO(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &PPOConfig{
		ObservationSpace: obs,
		ActionSpace:      act,
		OneHot:           cfg.OneHot,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		DiscreteActions:  r.bool("DISCRETE_ACTIONS"),
		BatchSize:        r.int("BATCH_SIZE"),
		LR:               r.float("LR"),
		LearnStep:        r.int("LEARN_STEP"),
		Gamma:            r.float("GAMMA"),
		GAELambda:        r.float("GAE_LAMBDA"),
		ActionStdInit:    r.float("ACTION_STD_INIT"),
		ClipCoef:         r.float("CLIP_COEF"),
		EntCoef:          r.float("ENT_COEF"),
		VFCoef:           r.float("VF_COEF"),
		MaxGradNorm:      r.float("MAX_GRAD_NORM"),
		TargetKL:         r.float("TARGET_KL"),
		UpdateEpochs:     r.int("UPDATE_EPOCHS"),
		Actor:            cfg.ActorNetwork,
		Critic:           cfg.CriticNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewPPO(c)
}

func makeCQN(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &CQNConfig{
		ObservationSpace: obs,
		ActionSpace:      act,
		OneHot:           cfg.OneHot,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		BatchSize:        r.int("BATCH_SIZE"),
		LR:               r.float("LR"),
		LearnStep:        r.int("LEARN_STEP"),
		Gamma:            r.float("GAMMA"),
		Tau:              r.float("TAU"),
		Double:           r.bool("DOUBLE"),
		Actor:            cfg.ActorNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewCQN(c)
}

func makeTD3(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &TD3Config{
		ObservationSpace: obs,
		ActionSpace:      act,
		OneHot:           cfg.OneHot,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		MaxAction:        r.float("MAX_ACTION"),
		MinAction:        r.float("MIN_ACTION"),
		OUNoise:          r.bool("O_U_NOISE"),
		ExplNoise:        r.float("EXPL_NOISE"),
		MeanNoise:        r.float("MEAN_NOISE"),
		Theta:            r.float("THETA"),
		DT:               r.float("DT"),
		VectNoiseDim:     cfg.numEnvs(),
		BatchSize:        r.int("BATCH_SIZE"),
		LRActor:          r.float("LR_ACTOR"),
		LRCritic:         r.float("LR_CRITIC"),
		LearnStep:        r.int("LEARN_STEP"),
		Gamma:            r.float("GAMMA"),
		Tau:              r.float("TAU"),
		PolicyFreq:       r.int("POLICY_FREQ"),
		Actor:            cfg.ActorNetwork,
		Critic:           cfg.CriticNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewTD3(c)
}

func makeMADDPG(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.agentSpaces()
	if err != nil {
		return nil, err
	}
	if err := cfg.checkMultiAgentNetworks(); err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &MADDPGConfig{
		ObservationSpaces: obs,
		ActionSpaces:      act,
		OneHot:            cfg.OneHot,
		Index:             index,
		NetConfig:         cfg.NetConfig,
		NAgents:           r.int("N_AGENTS"),
		AgentIDs:          r.strings("AGENT_IDS"),
		MaxAction:         r.float("MAX_ACTION"),
		MinAction:         r.float("MIN_ACTION"),
		OUNoise:           r.bool("O_U_NOISE"),
		ExplNoise:         r.float("EXPL_NOISE"),
		MeanNoise:         r.float("MEAN_NOISE"),
		Theta:             r.float("THETA"),
		DT:                r.float("DT"),
		VectNoiseDim:      cfg.numEnvs(),
		BatchSize:         r.int("BATCH_SIZE"),
		LRActor:           r.float("LR_ACTOR"),
		LRCritic:          r.float("LR_CRITIC"),
		LearnStep:         r.int("LEARN_STEP"),
		Gamma:             r.float("GAMMA"),
		Tau:               r.float("TAU"),
		DiscreteActions:   r.bool("DISCRETE_ACTIONS"),
		Actors:            cfg.ActorNetworks,
		Critics:           cfg.CriticNetworks,
		Creator:           cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewMADDPG(c)
}

func makeMATD3(cfg *PopulationConfig, index int) (Agent, error) {
	obs, act, err := cfg.agentSpaces()
	if err != nil {
		return nil, err
	}
	if err := cfg.checkMultiAgentNetworks(); err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &MATD3Config{
		ObservationSpaces: obs,
		ActionSpaces:      act,
		OneHot:            cfg.OneHot,
		Index:             index,
		NetConfig:         cfg.NetConfig,
		NAgents:           r.int("N_AGENTS"),
		AgentIDs:          r.strings("AGENT_IDS"),
		MaxAction:         r.float("MAX_ACTION"),
		MinAction:         r.float("MIN_ACTION"),
		OUNoise:           r.bool("O_U_NOISE"),
		ExplNoise:         r.float("EXPL_NOISE"),
		MeanNoise:         r.float("MEAN_NOISE"),
		Theta:             r.float("THETA"),
		DT:                r.float("DT"),
		VectNoiseDim:      cfg.numEnvs(),
		BatchSize:         r.int("BATCH_SIZE"),
		LRActor:           r.float("LR_ACTOR"),
		LRCritic:          r.float("LR_CRITIC"),
		LearnStep:         r.int("LEARN_STEP"),
		Gamma:             r.float("GAMMA"),
		Tau:               r.float("TAU"),
		PolicyFreq:        r.int("POLICY_FREQ"),
		DiscreteActions:   r.bool("DISCRETE_ACTIONS"),
		Actors:            cfg.ActorNetworks,
		Critics:           cfg.CriticNetworks,
		Creator:           cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewMATD3(c)
}

func makeNeuralUCB(cfg *PopulationConfig, index int) (Agent, error) {
	c, err := banditConfig(cfg, index)
	if err != nil {
		return nil, err
	}
	return NewNeuralUCB(c)
}

func makeNeuralTS(cfg *PopulationConfig, index int) (Agent, error) {
	c, err := banditConfig(cfg, index)
	if err != nil {
		return nil, err
	}
	return NewNeuralTS(c)
}

func banditConfig(cfg *PopulationConfig, index int) (*BanditConfig, error) {
	obs, act, err := cfg.singleSpaces()
	if err != nil {
		return nil, err
	}
	r := &hpReader{hp: cfg.Hyperparams}
	c := &BanditConfig{
		ObservationSpace: obs,
		ActionSpace:      act,
		Index:            index,
		NetConfig:        cfg.NetConfig,
		Gamma:            r.float("GAMMA"),
		Lambda:           r.float("LAMBDA"),
		Reg:              r.float("REG"),
		BatchSize:        r.int("BATCH_SIZE"),
		LR:               r.float("LR"),
		LearnStep:        r.int("LEARN_STEP"),
		Actor:            cfg.ActorNetwork,
		Creator:          cfg.creator(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}
