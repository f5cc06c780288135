package api

import (
	"time"

	"github.com/samber/lo"

	"descrow/deal"
	"descrow/ledger"
	"descrow/query"
	"descrow/rest"
)

func newRESTDeal(view query.DealView) rest.Deal {
	return rest.Deal{
		ID:      view.ID,
		Buyer:   view.Buyer,
		Seller:  view.Seller,
		Price:   view.Price,
		Balance: view.Balance,
		Status:  view.Status.String(),
	}
}

func newRESTDealFromDomain(d deal.Deal) rest.Deal {
	return rest.Deal{
		ID:      d.ID,
		Buyer:   d.Buyer,
		Seller:  d.Seller,
		Price:   d.Price,
		Balance: d.Balance,
		Status:  d.Status.String(),
	}
}

func newRESTLedger(entries []ledger.Entry) rest.LedgerEntryList {
	return rest.LedgerEntryList{
		Entries: lo.Map(entries, func(e ledger.Entry, _ int) rest.LedgerEntry {
			return rest.LedgerEntry{
				Direction: e.Direction,
				Amount:    e.Amount,
				Recipient: e.Recipient,
				CreatedAt: e.CreatedAt.Format(time.RFC3339),
			}
		}),
	}
}
