package game

import "time"

// Settings are the per-game tunables. They are fixed at game start.
type Settings struct {
	StartingCash       int           `json:"startingCash"`
	GoBonus            int           `json:"goBonus"`
	JailFine           int           `json:"jailFine"`
	MaxJailAttempts    int           `json:"maxJailAttempts"`
	BidMinIncrement    int           `json:"bidMinIncrement"`
	AuctionStartingBid int           `json:"auctionStartingBid"`
	AuctionInactivity  time.Duration `json:"auctionInactivity"`
	AuctionMaxDuration time.Duration `json:"auctionMaxDuration"`
	AuctionHistorySize int           `json:"auctionHistorySize"`
	MaxPlayers         int           `json:"maxPlayers"`
}

// DefaultSettings returns the classic rule values.
func DefaultSettings() Settings {
	return Settings{
		StartingCash:       1500,
		GoBonus:            200,
		JailFine:           50,
		MaxJailAttempts:    3,
		BidMinIncrement:    10,
		AuctionStartingBid: 10,
		AuctionInactivity:  30 * time.Second,
		AuctionMaxDuration: 5 * time.Minute,
		AuctionHistorySize: 32,
		MaxPlayers:         8,
	}
}
