package checkpoint

// Rating 结局评级
type Rating byte

const (
	RatingFired     Rating = 0
	RatingPoor      Rating = 1
	RatingMediocre  Rating = 2
	RatingGood      Rating = 3
	RatingExcellent Rating = 4
	RatingCorrupt   Rating = 5
	RatingHonorable Rating = 6
	RatingLegendary Rating = 7
)

var RatingDictionary = map[Rating]string{
	RatingFired:     "fired",
	RatingPoor:      "poor",
	RatingMediocre:  "mediocre",
	RatingGood:      "good",
	RatingExcellent: "excellent",
	RatingCorrupt:   "corrupt",
	RatingHonorable: "honorable",
	RatingLegendary: "legendary",
}

// EndGameResult is the final verdict on a sheriff's shift.
type EndGameResult struct {
	Rating Rating
	Title  string
}

var ratingTitles = map[Rating]string{
	RatingLegendary: "The Legendary Sheriff",
	RatingHonorable: "The Honorable Sheriff",
	RatingCorrupt:   "The Corrupt Baron",
	RatingExcellent: "Excellent Performance",
	RatingGood:      "Good Performance",
	RatingMediocre:  "Mediocre Performance",
	RatingPoor:      "Poor Performance",
	RatingFired:     "Fired",
}

// DetermineEndGameState ranks the shift. Reputation zero always means
// dismissal; the three named endings are checked next; otherwise reputation
// alone sets the rating.
func DetermineEndGameState(sheriff *Sheriff, stats *GameStats) EndGameResult {
	rep := sheriff.Reputation
	gold := sheriff.Gold

	var rating Rating
	switch {
	case rep <= 0:
		rating = RatingFired
	case rep >= 7 && gold >= 50 && stats.SmugglersCaught >= 3:
		rating = RatingLegendary
	case rep >= 7 && stats.BribesAccepted == 0:
		rating = RatingHonorable
	case rep <= 3 && stats.BribesAccepted >= 5 && gold >= 50:
		rating = RatingCorrupt
	case rep >= 7:
		rating = RatingExcellent
	case rep >= 4:
		rating = RatingGood
	case rep >= 2:
		rating = RatingMediocre
	case rep > 0:
		rating = RatingPoor
	default:
		rating = RatingFired
	}
	return EndGameResult{Rating: rating, Title: ratingTitles[rating]}
}
