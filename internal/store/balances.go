package store

import (
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// settleEpsilon absorbs floating point noise when pairing debts.
const settleEpsilon = 0.01

// Balance is one member's position in the household ledger.
type Balance struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Paid   float64 `json:"paid"`  // Sum of bought items this member paid for
	Share  float64 `json:"share"` // Fair share of the household total
	Amount float64 `json:"amount"` // Paid - Share. Positive = the household owes them
}

// DebtEdge is one suggested transfer that settles part of the ledger.
type DebtEdge struct {
	From   string  `json:"from"` // Member who owes
	To     string  `json:"to"`   // Member who is owed
	Amount float64 `json:"amount"`
}

// Balances computes the ledger for the current household. Only bought items
// whose buyer is a current member count toward the total, so the amounts
// always sum to zero; each member's share is the total divided by the member
// count. A buyer name shared by several members is credited to the first of
// them. A household without members, or no household, yields an empty ledger.
func (s *Store) Balances() []Balance {
	members := s.members()
	if len(members) == 0 {
		return []Balance{}
	}
	hid := s.householdID()

	buyer := make(map[string]string, len(members))
	for _, m := range members {
		if _, seen := buyer[m.Name]; !seen {
			buyer[m.Name] = m.ID
		}
	}

	total := 0.0
	paid := make(map[string]float64, len(members))
	for _, item := range s.shopping {
		if item.HouseholdID != hid || !item.IsBought() {
			continue
		}
		id, ok := buyer[item.BoughtBy]
		if !ok {
			continue
		}
		total += item.Price
		paid[id] += item.Price
	}

	share := total / float64(len(members))
	out := make([]Balance, 0, len(members))
	for _, m := range members {
		out = append(out, Balance{
			UserID: m.ID,
			Name:   m.Name,
			Paid:   paid[m.ID],
			Share:  share,
			Amount: paid[m.ID] - share,
		})
	}
	return out
}

// SettleAllDebts deletes every bought item of the current household, which
// zeroes every balance. It returns the number of items removed.
func (s *Store) SettleAllDebts() int {
	hid := s.householdID()
	if hid == "" {
		return 0
	}
	return s.removeBought(func(i *types.ShoppingItem) bool { return i.HouseholdID == hid })
}

// SettleWith deletes the bought items paid for by creditor. The household
// total shrinks, so other members' balances are recomputed too, not just
// the creditor's. It returns the number of items removed.
func (s *Store) SettleWith(creditor string) int {
	hid := s.householdID()
	if hid == "" || creditor == "" {
		return 0
	}
	return s.removeBought(func(i *types.ShoppingItem) bool {
		return i.HouseholdID == hid && i.BoughtBy == creditor
	})
}

func (s *Store) removeBought(match func(*types.ShoppingItem) bool) int {
	kept := s.shopping[:0]
	var removed []string
	for _, item := range s.shopping {
		if item.IsBought() && match(item) {
			removed = append(removed, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	clear(s.shopping[len(kept):])
	s.shopping = kept

	for _, id := range removed {
		s.remove(types.ShoppingCollection, id)
	}
	if len(removed) > 0 {
		s.addLog("%d purchases settled", len(removed))
	}
	return len(removed)
}

// DebtEdges pairs debtors with creditors greedily, in ledger order, to
// suggest the transfers that would settle the household.
func (s *Store) DebtEdges() []DebtEdge {
	var creditors, debtors []Balance
	for _, b := range s.Balances() {
		if b.Amount > settleEpsilon {
			creditors = append(creditors, b)
		} else if b.Amount < -settleEpsilon {
			debtors = append(debtors, b)
		}
	}

	owes := make(map[string]float64, len(debtors))
	owed := make(map[string]float64, len(creditors))
	for _, d := range debtors {
		owes[d.Name] = -d.Amount
	}
	for _, c := range creditors {
		owed[c.Name] = c.Amount
	}

	edges := []DebtEdge{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].Name
		creditor := creditors[j].Name

		amount := min(owes[debtor], owed[creditor])
		if amount > settleEpsilon {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		owes[debtor] -= amount
		owed[creditor] -= amount

		if owes[debtor] < settleEpsilon {
			i++
		}
		if owed[creditor] < settleEpsilon {
			j++
		}
	}
	return edges
}
