package anypop

import (
	"reflect"
	"strings"
	"testing"
)

func TestHyperparamLookups(t *testing.T) {
	hp := Hyperparams{
		"LR":         1e-3,
		"BATCH_SIZE": 64,
		"DOUBLE":     true,
		"AGENT_IDS":  []interface{}{"agent_0", "agent_1"},
	}
	if v, err := hp.Float("LR"); err != nil || v != 1e-3 {
		t.Errorf("Float(LR): got %v, %v", v, err)
	}
	if v, err := hp.Float("BATCH_SIZE"); err != nil || v != 64 {
		t.Errorf("Float(BATCH_SIZE): got %v, %v", v, err)
	}
	if v, err := hp.Int("BATCH_SIZE"); err != nil || v != 64 {
		t.Errorf("Int(BATCH_SIZE): got %v, %v", v, err)
	}
	if v, err := hp.Bool("DOUBLE"); err != nil || !v {
		t.Errorf("Bool(DOUBLE): got %v, %v", v, err)
	}
	ids, err := hp.Strings("AGENT_IDS")
	if err != nil || !reflect.DeepEqual(ids, []string{"agent_0", "agent_1"}) {
		t.Errorf("Strings(AGENT_IDS): got %v, %v", ids, err)
	}
}

func TestHyperparamErrors(t *testing.T) {
	hp := Hyperparams{"LR": "fast", "LEARN_STEP": 1.5}
	if _, err := hp.Float("GAMMA"); err == nil ||
		!strings.Contains(err.Error(), "GAMMA") {
		t.Errorf("expected missing-key error naming GAMMA, got %v", err)
	}
	if _, err := hp.Float("LR"); err == nil {
		t.Error("expected type error for non-numeric LR")
	}
	if _, err := hp.Int("LEARN_STEP"); err == nil {
		t.Error("expected error for fractional LEARN_STEP")
	}
	if _, err := hp.Bool("LR"); err == nil {
		t.Error("expected type error for non-bool LR")
	}
	if _, err := hp.Strings("LR"); err == nil {
		t.Error("expected type error for non-list LR")
	}
}

func TestHPReaderFirstError(t *testing.T) {
	r := &hpReader{hp: Hyperparams{"GAMMA": 0.99}}
	if v := r.float("GAMMA"); v != 0.99 {
		t.Errorf("expected 0.99 but got %v", v)
	}
	r.float("TAU")
	r.float("LR")
	if r.err == nil || !strings.Contains(r.err.Error(), "TAU") {
		t.Errorf("expected first error to name TAU, got %v", r.err)
	}
}
