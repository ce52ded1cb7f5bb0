package anypop

import "fmt"

// Hyperparams maps canonical uppercase hyperparameter
// names (e.g. "BATCH_SIZE") to their values.
//
// CreatePopulation reads each algorithm's fixed set of
// keys from the map; a missing or mistyped key results in
// an error naming the key.
type Hyperparams map[string]interface{}

// Float fetches a numeric hyperparameter.
func (h Hyperparams) Float(key string) (float64, error) {
	val, ok := h[key]
	if !ok {
		return 0, fmt.Errorf("missing hyperparameter: %s", key)
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("hyperparameter %s: expected number, got %T", key, val)
}

// Int fetches an integer hyperparameter.
func (h Hyperparams) Int(key string) (int, error) {
	val, ok := h[key]
	if !ok {
		return 0, fmt.Errorf("missing hyperparameter: %s", key)
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("hyperparameter %s: expected integer, got %v", key, val)
}

// Bool fetches a boolean hyperparameter.
func (h Hyperparams) Bool(key string) (bool, error) {
	val, ok := h[key]
	if !ok {
		return false, fmt.Errorf("missing hyperparameter: %s", key)
	}
	if v, ok := val.(bool); ok {
		return v, nil
	}
	return false, fmt.Errorf("hyperparameter %s: expected bool, got %T", key, val)
}

// Strings fetches a list-of-strings hyperparameter such as
// "AGENT_IDS".
func (h Hyperparams) Strings(key string) ([]string, error) {
	val, ok := h[key]
	if !ok {
		return nil, fmt.Errorf("missing hyperparameter: %s", key)
	}
	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		res := make([]string, len(v))
		for i, x := range v {
			s, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("hyperparameter %s: expected string "+
					"at index %d, got %T", key, i, x)
			}
			res[i] = s
		}
		return res, nil
	}
	return nil, fmt.Errorf("hyperparameter %s: expected string list, got %T",
		key, val)
}

// hpReader reads hyperparameters while accumulating the
// first error, so per-algorithm adapters can read their
// whole key list without checking each lookup.
type hpReader struct {
	hp  Hyperparams
	err error
}

func (r *hpReader) float(key string) float64 {
	if r.err != nil {
		return 0
	}
	var v float64
	v, r.err = r.hp.Float(key)
	return v
}

func (r *hpReader) int(key string) int {
	if r.err != nil {
		return 0
	}
	var v int
	v, r.err = r.hp.Int(key)
	return v
}

func (r *hpReader) bool(key string) bool {
	if r.err != nil {
		return false
	}
	var v bool
	v, r.err = r.hp.Bool(key)
	return v
}

func (r *hpReader) strings(key string) []string {
	if r.err != nil {
		return nil
	}
	var v []string
	v, r.err = r.hp.Strings(key)
	return v
}
