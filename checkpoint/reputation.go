package checkpoint

import "nottingham-lite/goods"

// UpdateReputation applies the outcome matrix after a round resolves:
//
//	inspect + lie:                rep +1, xp +1
//	inspect + honest:             rep -1 (overreach)
//	pass + honest:                rep +1
//	pass + lie, contraband:       rep -2 (contraband slipped through)
//	pass + lie, legal goods only: rep +0, xp +1 (no harm done)
//
// Reputation always stays within [0, 10].
func UpdateReputation(sheriff *Sheriff, inspected, wasHonest bool, actual []goods.Good) {
	switch {
	case inspected && !wasHonest:
		sheriff.AdjustReputation(1)
		sheriff.GainExperience(1)
	case inspected && wasHonest:
		sheriff.AdjustReputation(-1)
	case !inspected && wasHonest:
		sheriff.AdjustReputation(1)
	default:
		if goods.HasContraband(actual) {
			sheriff.AdjustReputation(-2)
		} else {
			sheriff.GainExperience(1)
		}
	}
}
