package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Checksum is a deterministic digest of a snapshot. It guards against
// divergent game states across persistence round trips: two snapshots of the
// same state always hash identically, regardless of map iteration order or
// event timestamps.
type Checksum struct {
	Hash    string `json:"hash"`
	Version int    `json:"version"`
}

// ComputeChecksum hashes the deterministic fields of the snapshot.
func (s *Snapshot) ComputeChecksum() Checksum {
	hash := sha256.Sum256([]byte(s.deterministicRepresentation()))
	return Checksum{
		Hash:    hex.EncodeToString(hash[:]),
		Version: SnapshotSchemaVersion,
	}
}

// deterministicRepresentation builds a canonical string form of the snapshot.
// Timestamps and per-event IDs are excluded; slices already carry a stable
// order, and anything map-shaped is sorted first.
func (s *Snapshot) deterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%s|%s|%d|%s|%d-%d|%d|%t|%s\n",
		s.GameID,
		s.Name,
		s.Status,
		s.CurrentPlayer,
		s.Phase,
		s.LastDice[0], s.LastDice[1],
		s.DoublesCount,
		s.ExtraRoll,
		s.WinnerID,
	)

	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%d|%d|%t|%d|%d|%t\n",
			p.ID, p.Name, p.Cash, p.Position, p.InJail, p.JailTurns, p.JailCards, p.Bankrupt)
		fmt.Fprintf(&buf, "HOLDINGS:%v|%v\n", p.Properties, p.HeldJailCards)
	}

	board := append([]PropertySnapshot(nil), s.Board...)
	sort.Slice(board, func(i, j int) bool { return board[i].ID < board[j].ID })
	for _, p := range board {
		fmt.Fprintf(&buf, "PROPERTY:%s|%s|%d|%t|%t\n", p.ID, p.OwnerID, p.Houses, p.Hotel, p.Mortgaged)
	}

	fmt.Fprintf(&buf, "OFFER:%s\n", s.PendingPurchase)
	if s.PendingDebt != nil {
		fmt.Fprintf(&buf, "DEBT:%s|%d|%s\n", s.PendingDebt.CreditorID, s.PendingDebt.Amount, s.PendingDebt.Reason)
	}
	if s.Auction != nil {
		fmt.Fprintf(&buf, "AUCTION:%s|%s|%d|%s|%d\n",
			s.Auction.ID, s.Auction.PropertyID, s.Auction.CurrentBid, s.Auction.HighBidderID, len(s.Auction.Bids))
	}

	fmt.Fprintf(&buf, "CHANCE:%v|%v\n", s.ChanceDraw, s.ChanceDiscard)
	fmt.Fprintf(&buf, "CHEST:%v|%v\n", s.ChestDraw, s.ChestDiscard)

	return buf.String()
}
