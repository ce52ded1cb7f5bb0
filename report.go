package anypop

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"gonum.org/v1/gonum/stat"
)

// FprintHyperparams writes one line per agent with its
// index, the mean of its last five fitness scores, and its
// current attribute summary.
func FprintHyperparams(w io.Writer, pop Population) {
	for _, agent := range pop {
		fit := agent.Fitness()
		if len(fit) > 5 {
			fit = fit[len(fit)-5:]
		}
		fmt.Fprintf(w, "%s    %s    Attributes: %v\n",
			aurora.Green(fmt.Sprintf("Agent ID: %d", agent.Index())),
			aurora.Blue(fmt.Sprintf("Mean 5 Fitness: %.2f", stat.Mean(fit, nil))),
			agent.InspectAttributes())
	}
}

// PrintHyperparams prints the population summary to
// standard output.
func PrintHyperparams(pop Population) {
	FprintHyperparams(os.Stdout, pop)
}

// EnvDefinedActions collects each agent's
// "env_defined_action" info entry.
//
// It returns nil when no agent defines an action, so
// callers can distinguish that case from a mapping with
// some absent entries. Otherwise the result has an entry
// for every requested agent ID, nil for agents without a
// defined action. An agent ID missing from info entirely
// is treated the same as one whose info lacks the entry.
func EnvDefinedActions(info map[string]map[string]interface{},
	agentIDs []string) map[string]interface{} {
	res := make(map[string]interface{}, len(agentIDs))
	defined := false
	for _, id := range agentIDs {
		var action interface{}
		if agentInfo, ok := info[id]; ok {
			action = agentInfo["env_defined_action"]
		}
		if action != nil {
			defined = true
		}
		res[id] = action
	}
	if !defined {
		return nil
	}
	return res
}
