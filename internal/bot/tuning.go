package bot

// Tuning controls when the cautious brain spends power cards.
type Tuning struct {
	// HoldBackHandSize is the hand size above which twos and jokers are saved
	// instead of answering an optional trick.
	HoldBackHandSize int
	// ThreatThreshold disables saving once any opponent holds this many cards or fewer.
	ThreatThreshold int
}

// DefaultTuning saves power cards through the opening and middle of a round.
var DefaultTuning = Tuning{
	HoldBackHandSize: 5,
	ThreatThreshold:  3,
}
