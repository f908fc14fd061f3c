package checkpoint

import "fmt"

type Config struct {
	// Session
	Rounds        int
	MerchantCount int

	// Negotiation
	MaxNegotiationRounds int

	// Economy
	StartingGold int

	// RNG seed (0 => time-based)
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Rounds:               10,
		MerchantCount:        4,
		MaxNegotiationRounds: 20,
		StartingGold:         StartingGold,
	}
}

func (c Config) validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("Rounds must be > 0")
	}
	if c.MerchantCount <= 0 {
		return fmt.Errorf("MerchantCount must be > 0")
	}
	if c.MaxNegotiationRounds <= 0 {
		return fmt.Errorf("MaxNegotiationRounds must be > 0")
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("StartingGold must be >= 0")
	}
	return nil
}
