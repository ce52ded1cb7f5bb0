package anypop

import "github.com/unixpickle/lazyseq"

// Rewards stores the immediate rewards for a batch of
// environments, one row per environment.
type Rewards [][]float64

// Totals sums the rewards in each row.
func (r Rewards) Totals() []float64 {
	res := make([]float64, len(r))
	for i, row := range r {
		res[i] = sum(row)
	}
	return res
}

// Mean computes the mean of the row totals.
func (r Rewards) Mean() float64 {
	var total float64
	for _, t := range r.Totals() {
		total += t
	}
	return total / float64(len(r))
}

// RewardsFromTape unpacks a tape of reward batches into
// one row of rewards per recorded sequence, so rollouts
// recorded as tapes can feed VectorizedScores.
func RewardsFromTape(tape lazyseq.Tape) Rewards {
	var res Rewards
	for batch := range tape.ReadTape(0, -1) {
		if res == nil {
			res = make(Rewards, len(batch.Present))
		}
		data := batch.Packed.Creator().Float64Slice(batch.Packed.Data())
		for i, pres := range batch.Present {
			if pres {
				res[i] = append(res[i], data[0])
				data = data[1:]
			}
		}
	}
	return res
}

// VectorizedScores reduces vectorized reward and
// termination buffers to a flat list of per-episode
// returns.
//
// Both buffers have one row per environment and one column
// per step; a 1 in terminations marks the final step of an
// episode. Rows are processed independently and their
// episode scores concatenated in row order.
//
// A row with no terminations contributes its entire reward
// sum as a single score. Otherwise each termination closes
// a window starting right after the previous one, and each
// window's reward sum is one score. When onlyFirstEpisode
// is true, only the first window of each row is kept. When
// onlyFirstEpisode is false and includeUnterminated is
// true, rewards after a row's final termination form one
// trailing partial score.
func VectorizedScores(rewards, terminations [][]float64,
	includeUnterminated, onlyFirstEpisode bool) []float64 {
	var scores []float64
	for env, row := range rewards {
		var termIdxs []int
		for i, t := range terminations[env] {
			if t == 1 {
				termIdxs = append(termIdxs, i)
			}
		}
		if len(termIdxs) == 0 {
			scores = append(scores, sum(row))
			continue
		}
		start := 0
		for _, term := range termIdxs {
			scores = append(scores, sum(row[start:term+1]))
			if onlyFirstEpisode {
				break
			}
			start = term + 1
		}
		if !onlyFirstEpisode && includeUnterminated && start < len(row) {
			scores = append(scores, sum(row[start:]))
		}
	}
	return scores
}

func sum(xs []float64) float64 {
	var res float64
	for _, x := range xs {
		res += x
	}
	return res
}
