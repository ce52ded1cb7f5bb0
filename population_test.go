package anypop

import (
	"reflect"
	"strings"
	"testing"

	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec/anyvec64"
)

func dqnHP() Hyperparams {
	return Hyperparams{
		"BATCH_SIZE": 64,
		"LR":         1e-3,
		"LEARN_STEP": 1,
		"GAMMA":      0.99,
		"TAU":        1e-2,
		"DOUBLE":     true,
	}
}

func rainbowHP() Hyperparams {
	hp := dqnHP()
	delete(hp, "DOUBLE")
	hp["BETA"] = 0.4
	hp["PRIOR_EPS"] = 1e-6
	hp["NUM_ATOMS"] = 51
	hp["V_MIN"] = -10.0
	hp["V_MAX"] = 10.0
	hp["N_STEP"] = 3
	return hp
}

func ddpgHP() Hyperparams {
	return Hyperparams{
		"MAX_ACTION":  1.0,
		"MIN_ACTION":  -1.0,
		"O_U_NOISE":   true,
		"EXPL_NOISE":  0.1,
		"MEAN_NOISE":  0.0,
		"THETA":       0.15,
		"DT":          1e-2,
		"BATCH_SIZE":  64,
		"LR_ACTOR":    1e-4,
		"LR_CRITIC":   1e-3,
		"LEARN_STEP":  1,
		"GAMMA":       0.99,
		"TAU":         1e-2,
		"POLICY_FREQ": 2,
	}
}

func ppoHP() Hyperparams {
	return Hyperparams{
		"DISCRETE_ACTIONS": true,
		"BATCH_SIZE":       64,
		"LR":               1e-4,
		"LEARN_STEP":       1,
		"GAMMA":            0.99,
		"GAE_LAMBDA":       0.95,
		"ACTION_STD_INIT":  0.6,
		"CLIP_COEF":        0.2,
		"ENT_COEF":         0.01,
		"VF_COEF":          0.5,
		"MAX_GRAD_NORM":    0.5,
		"TARGET_KL":        0.02,
		"UPDATE_EPOCHS":    4,
	}
}

func maddpgHP() Hyperparams {
	hp := ddpgHP()
	delete(hp, "POLICY_FREQ")
	hp["N_AGENTS"] = 2
	hp["AGENT_IDS"] = []string{"agent_0", "agent_1"}
	hp["DISCRETE_ACTIONS"] = false
	return hp
}

func matd3HP() Hyperparams {
	hp := maddpgHP()
	hp["POLICY_FREQ"] = 2
	return hp
}

func banditHP() Hyperparams {
	return Hyperparams{
		"GAMMA":      1.0,
		"LAMBDA":     1.0,
		"REG":        0.000625,
		"BATCH_SIZE": 64,
		"LR":         1e-3,
		"LEARN_STEP": 1,
	}
}

func TestCreatePopulation(t *testing.T) {
	creator := anyvec64.DefaultCreator{}
	boxObs := &Space{Type: Box, Shape: []int{4}}
	boxAct := &Space{Type: Box, Shape: []int{2}}
	discAct := &Space{Type: Discrete, N: 2}
	multiObs := SpaceMap{"agent_0": boxObs, "agent_1": boxObs}
	multiAct := SpaceMap{"agent_0": boxAct, "agent_1": boxAct}

	table := []struct {
		Algo string
		Obs  SpaceSpec
		Act  SpaceSpec
		HP   Hyperparams
	}{
		{AlgoDQN, boxObs, discAct, dqnHP()},
		{AlgoCQN, boxObs, discAct, dqnHP()},
		{AlgoRainbowDQN, boxObs, discAct, rainbowHP()},
		{AlgoDDPG, boxObs, boxAct, ddpgHP()},
		{AlgoTD3, boxObs, boxAct, ddpgHP()},
		{AlgoPPO, boxObs, discAct, ppoHP()},
		{AlgoMADDPG, multiObs, multiAct, maddpgHP()},
		{AlgoMATD3, multiObs, multiAct, matd3HP()},
		{AlgoNeuralUCB, boxObs, discAct, banditHP()},
		{AlgoNeuralTS, boxObs, discAct, banditHP()},
	}
	for _, test := range table {
		t.Run(test.Algo, func(t *testing.T) {
			pop, err := CreatePopulation(&PopulationConfig{
				Algo:             test.Algo,
				ObservationSpace: test.Obs,
				ActionSpace:      test.Act,
				NetConfig:        &NetConfig{HiddenSizes: []int{8}},
				Hyperparams:      test.HP,
				PopulationSize:   3,
				Creator:          creator,
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(pop) != 3 {
				t.Fatalf("expected 3 agents but got %d", len(pop))
			}
			for i, agent := range pop {
				if agent.Index() != i {
					t.Errorf("agent %d has index %d", i, agent.Index())
				}
				if agent.Algorithm() != test.Algo {
					t.Errorf("agent %d has algorithm %s", i, agent.Algorithm())
				}
			}
		})
	}
}

func TestCreatePopulationUnknownAlgo(t *testing.T) {
	pop, err := CreatePopulation(&PopulationConfig{Algo: "Evolved Q"})
	if err != nil {
		t.Fatal(err)
	}
	if pop == nil || len(pop) != 0 {
		t.Errorf("expected empty population but got %v", pop)
	}
}

func TestCreatePopulationDefaultSize(t *testing.T) {
	pop, err := CreatePopulation(&PopulationConfig{
		Algo:             AlgoDQN,
		ObservationSpace: &Space{Type: Box, Shape: []int{4}},
		ActionSpace:      &Space{Type: Discrete, N: 2},
		NetConfig:        &NetConfig{HiddenSizes: []int{8}},
		Hyperparams:      dqnHP(),
		Creator:          anyvec64.DefaultCreator{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pop) != 1 {
		t.Errorf("expected 1 agent but got %d", len(pop))
	}
}

func TestCreatePopulationMissingKey(t *testing.T) {
	hp := dqnHP()
	delete(hp, "TAU")
	_, err := CreatePopulation(&PopulationConfig{
		Algo:             AlgoDQN,
		ObservationSpace: &Space{Type: Box, Shape: []int{4}},
		ActionSpace:      &Space{Type: Discrete, N: 2},
		Hyperparams:      hp,
		Creator:          anyvec64.DefaultCreator{},
	})
	if err == nil || !strings.Contains(err.Error(), "TAU") {
		t.Errorf("expected error naming TAU, got %v", err)
	}
}

func TestCreatePopulationBadSpaces(t *testing.T) {
	_, err := CreatePopulation(&PopulationConfig{
		Algo:             AlgoMADDPG,
		ObservationSpace: &Space{Type: Box, Shape: []int{4}},
		ActionSpace:      &Space{Type: Box, Shape: []int{2}},
		Hyperparams:      maddpgHP(),
		Creator:          anyvec64.DefaultCreator{},
	})
	if err == nil {
		t.Error("expected error for single spaces on a multi-agent algorithm")
	}
}

func TestCreatePopulationCustomActor(t *testing.T) {
	creator := anyvec64.DefaultCreator{}
	nc := &NetConfig{HiddenSizes: []int{8}}
	custom, err := nc.Build(creator, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	pop, err := CreatePopulation(&PopulationConfig{
		Algo:             AlgoDQN,
		ObservationSpace: &Space{Type: Box, Shape: []int{4}},
		ActionSpace:      &Space{Type: Discrete, N: 2},
		Hyperparams:      dqnHP(),
		ActorNetwork:     custom,
		Creator:          creator,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pop[0].(*DQN).Actor != custom {
		t.Error("expected custom actor to be used")
	}
}

func TestCreatePopulationPerAgentNetworks(t *testing.T) {
	creator := anyvec64.DefaultCreator{}
	boxObs := &Space{Type: Box, Shape: []int{4}}
	boxAct := &Space{Type: Box, Shape: []int{2}}
	nc := &NetConfig{HiddenSizes: []int{8}}
	customActor, err := nc.Build(creator, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	customCritic, err := nc.Build(creator, 12, 1)
	if err != nil {
		t.Fatal(err)
	}
	pop, err := CreatePopulation(&PopulationConfig{
		Algo:             AlgoMADDPG,
		ObservationSpace: SpaceMap{"agent_0": boxObs, "agent_1": boxObs},
		ActionSpace:      SpaceMap{"agent_0": boxAct, "agent_1": boxAct},
		NetConfig:        nc,
		Hyperparams:      maddpgHP(),
		ActorNetworks:    map[string]anyrnn.Block{"agent_0": customActor},
		CriticNetworks:   map[string]anyrnn.Block{"agent_1": customCritic},
		Creator:          creator,
	})
	if err != nil {
		t.Fatal(err)
	}
	group := pop[0].(*MADDPG)
	if group.Actors["agent_0"] != customActor {
		t.Error("expected custom actor for agent_0")
	}
	if group.Actors["agent_1"] == nil || group.Actors["agent_1"] == customActor {
		t.Error("expected a built actor for agent_1")
	}
	if group.Critics["agent_1"] != customCritic {
		t.Error("expected custom critic for agent_1")
	}
}

func TestCreatePopulationMultiAgentSingleNetwork(t *testing.T) {
	creator := anyvec64.DefaultCreator{}
	boxObs := &Space{Type: Box, Shape: []int{4}}
	boxAct := &Space{Type: Box, Shape: []int{2}}
	nc := &NetConfig{HiddenSizes: []int{8}}
	custom, err := nc.Build(creator, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, algo := range []string{AlgoMADDPG, AlgoMATD3} {
		_, err := CreatePopulation(&PopulationConfig{
			Algo:             algo,
			ObservationSpace: SpaceMap{"agent_0": boxObs, "agent_1": boxObs},
			ActionSpace:      SpaceMap{"agent_0": boxAct, "agent_1": boxAct},
			Hyperparams:      matd3HP(),
			ActorNetwork:     custom,
			Creator:          creator,
		})
		if err == nil || !strings.Contains(err.Error(), "ActorNetworks") {
			t.Errorf("%s: expected per-agent network error, got %v", algo, err)
		}
	}
}

func TestSupportedAlgorithms(t *testing.T) {
	expected := []string{"CQN", "DDPG", "DQN", "MADDPG", "MATD3", "NeuralTS",
		"NeuralUCB", "PPO", "Rainbow DQN", "TD3"}
	if actual := SupportedAlgorithms(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}
