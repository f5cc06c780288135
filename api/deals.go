package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"descrow/auth"
	"descrow/deal"
	"descrow/metrics"
	"descrow/rest"
)

func (s *Server) postDeal(w http.ResponseWriter, r *http.Request) error {
	var req rest.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err)
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(err)
	}

	caller, _ := auth.CallerFromContext(r.Context())

	id, err := s.registry.CreateContract(r.Context(), req.Buyer, req.Seller, req.Price, caller.Address)
	if err != nil {
		return err
	}

	metrics.DealsCreated.Inc()
	s.replyJSON(w, http.StatusCreated, rest.DealCreated{ID: id})
	return nil
}

func (s *Server) getDeals(w http.ResponseWriter, r *http.Request) error {
	var (
		ids []string
		err error
	)
	if party := r.URL.Query().Get("party"); party != "" {
		ids, err = s.registry.GetContractsByParty(r.Context(), party)
	} else {
		ids, err = s.registry.GetAllContracts(r.Context())
	}
	if err != nil {
		return err
	}

	s.replyJSON(w, http.StatusOK, rest.DealList{Deals: ids})
	return nil
}

func (s *Server) getDeal(w http.ResponseWriter, r *http.Request) error {
	view, err := s.facade.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	s.replyJSON(w, http.StatusOK, newRESTDeal(view))
	return nil
}

func (s *Server) getDealStatus(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	status, err := s.facade.Status(r.Context(), id)
	if err != nil {
		return err
	}

	s.replyJSON(w, http.StatusOK, rest.DealStatus{ID: id, Status: status.String()})
	return nil
}

func (s *Server) getDealLedger(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	// Resolve first so unknown ids return NotFound, not an empty list.
	if _, err := s.facade.Resolve(r.Context(), id); err != nil {
		return err
	}

	entries, err := s.movements.Entries(r.Context(), id)
	if err != nil {
		return err
	}

	s.replyJSON(w, http.StatusOK, newRESTLedger(entries))
	return nil
}

func (s *Server) postFund(w http.ResponseWriter, r *http.Request) error {
	var req rest.FundDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err)
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(err)
	}

	caller, _ := auth.CallerFromContext(r.Context())

	d, err := s.deals.Fund(r.Context(), deal.FundParams{
		DealID: chi.URLParam(r, "id"),
		Caller: caller,
		Amount: req.Amount,
	})
	if err != nil {
		return err
	}

	metrics.DealsFunded.Inc()
	s.replyJSON(w, http.StatusOK, newRESTDealFromDomain(d))
	return nil
}

func (s *Server) postRelease(w http.ResponseWriter, r *http.Request) error {
	return s.settle(w, r, s.deals.Release, metrics.DealsReleased)
}

func (s *Server) postRefund(w http.ResponseWriter, r *http.Request) error {
	return s.settle(w, r, s.deals.Refund, metrics.DealsRefunded)
}

func (s *Server) settle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, params deal.SettleParams) (deal.Deal, error),
	counter prometheus.Counter,
) error {
	caller, _ := auth.CallerFromContext(r.Context())

	d, err := op(r.Context(), deal.SettleParams{
		DealID: chi.URLParam(r, "id"),
		Caller: caller,
	})
	if err != nil {
		return err
	}

	counter.Inc()
	s.replyJSON(w, http.StatusOK, newRESTDealFromDomain(d))
	return nil
}
