package anypop

import (
	"fmt"
	"path/filepath"

	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

// A Networker is an agent which exposes its networks for
// checkpointing.
//
// Every built-in algorithm implements this; the networks
// come back in a fixed order, actors first.
type Networker interface {
	Networks() []anyrnn.Block
}

// SaveAgentNetworks writes an agent's networks to a file.
func SaveAgentNetworks(path string, agent Networker) (err error) {
	defer essentials.AddCtxTo("save agent networks", &err)
	nets := agent.Networks()
	objs := make([]interface{}, len(nets))
	for i, n := range nets {
		objs[i] = n
	}
	return serializer.SaveAny(path, objs...)
}

// LoadAgentNetworks reads networks previously written by
// SaveAgentNetworks into the given destinations, which
// must be pointers to the concrete network types.
func LoadAgentNetworks(path string, dests ...interface{}) (err error) {
	defer essentials.AddCtxTo("load agent networks", &err)
	return serializer.LoadAny(path, dests...)
}

// SavePopulationNetworks writes every agent's networks
// under dir, one file per agent named by its index.
func SavePopulationNetworks(dir string, pop Population) (err error) {
	defer essentials.AddCtxTo("save population networks", &err)
	for _, agent := range pop {
		n, ok := agent.(Networker)
		if !ok {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("agent_%d", agent.Index()))
		if err := SaveAgentNetworks(path, n); err != nil {
			return err
		}
	}
	return nil
}
