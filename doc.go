// Package anypop provides the setup glue for
// population-based reinforcement learning experiments:
// factories for vectorized environments and populations of
// agents, episode score computation over vectorized reward
// buffers, and reporting helpers.
//
// The training loop itself lives outside this package; it
// drives the environments and agents created here and
// records fitness through the Agent interface.
package anypop
