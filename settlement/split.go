package settlement

import (
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/shopspring/decimal"
)

var (
	// BaseShare of the pool is split evenly across the session's campaigns.
	BaseShare = decimal.RequireFromString("0.30")
	// PerformanceShare of the pool is split by share of the votes.
	PerformanceShare = decimal.RequireFromString("0.70")
)

type Allocation struct {
	Campaign storage.SessionCampaign `json:"campaign"`
	Amount   float64                 `json:"amount"`
}

// Split divides poolTotal across campaigns. Every campaign gets an equal part of the base
// share plus its vote-proportional part of the performance share. Each allocation is
// rounded to cents on its own, so the sum can be a few cents off poolTotal; that
// remainder stays undistributed.
func Split(poolTotal float64, campaigns []storage.SessionCampaign, totalVotes int) []Allocation {
	if len(campaigns) == 0 {
		return nil
	}
	pool := decimal.NewFromFloat(poolTotal)
	if pool.IsNegative() {
		pool = decimal.Zero
	}
	base := pool.Mul(BaseShare).Div(decimal.NewFromInt(int64(len(campaigns))))
	performance := pool.Mul(PerformanceShare)

	allocations := make([]Allocation, 0, len(campaigns))
	for _, c := range campaigns {
		share := base
		if totalVotes > 0 && c.Votes > 0 {
			share = share.Add(performance.Mul(decimal.NewFromInt(int64(c.Votes))).Div(decimal.NewFromInt(int64(totalVotes))))
		}
		amount, _ := share.Round(2).Float64()
		allocations = append(allocations, Allocation{Campaign: c, Amount: amount})
	}
	return allocations
}

// Winner returns the campaign with the most votes; on a tie the one listed first wins.
func Winner(campaigns []storage.SessionCampaign) (storage.SessionCampaign, error) {
	if len(campaigns) == 0 {
		return storage.SessionCampaign{}, ErrNoCampaigns
	}
	winner := campaigns[0]
	for _, c := range campaigns[1:] {
		if c.Votes > winner.Votes {
			winner = c
		}
	}
	return winner, nil
}
