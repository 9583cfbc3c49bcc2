// Copyright 2025 The HederaMarketPlace Authors
// This file is part of the hederamarket library.
//
// The hederamarket library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The hederamarket library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the hederamarket library. If not, see <http://www.gnu.org/licenses/>.

// Package web serves the marketplace client's route surface as a JSON API.
// Each route mirrors one view of the frontend: login at /, browse/buy at
// /HomePage, listing at /listProducts, the approval queues at /admin and
// /owner, and the ledger at /transactions. Role-gated routes redirect
// unauthorized accounts back to the login route.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"

	"github.com/sumitbawane/HederaMarketPlace/market"
)

// Server exposes the marketplace workflows over HTTP.
type Server struct {
	svc    *market.Service
	router *mux.Router
}

// NewServer builds the route table over a marketplace service.
func NewServer(svc *market.Service) *Server {
	s := &Server{svc: svc, router: mux.NewRouter()}

	r := s.router
	r.HandleFunc(market.RouteLogin, s.handleLoginState).Methods(http.MethodGet)
	r.HandleFunc("/connect", s.handleConnect).Methods(http.MethodPost)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)

	r.HandleFunc(market.RouteHome, s.handleHome).Methods(http.MethodGet)
	r.HandleFunc(market.RouteHome+"/requestSeller", s.handleRequestSeller).Methods(http.MethodPost)
	r.HandleFunc(market.RouteHome+"/requestAdmin", s.handleRequestAdmin).Methods(http.MethodPost)
	r.HandleFunc(market.RouteHome+"/buy/{id:[0-9]+}", s.handleBuy).Methods(http.MethodPost)

	r.HandleFunc(market.RouteListProducts, s.requireRole(market.RoleSeller, s.handleListForm)).Methods(http.MethodGet)
	r.HandleFunc(market.RouteListProducts, s.requireRole(market.RoleSeller, s.handleListProduct)).Methods(http.MethodPost)

	r.HandleFunc(market.RouteAdmin, s.requireRole(market.RoleAdmin, s.handleSellerRequests)).Methods(http.MethodGet)
	r.HandleFunc(market.RouteAdmin+"/process", s.requireRole(market.RoleAdmin, s.handleProcessSeller)).Methods(http.MethodPost)
	r.HandleFunc(market.RouteAdmin+"/revoke", s.requireRole(market.RoleAdmin, s.handleRevokeSeller)).Methods(http.MethodPost)

	r.HandleFunc(market.RouteOwner, s.requireRole(market.RoleOwner, s.handleAdminRequests)).Methods(http.MethodGet)
	r.HandleFunc(market.RouteOwner+"/process", s.requireRole(market.RoleOwner, s.handleProcessAdmin)).Methods(http.MethodPost)
	r.HandleFunc(market.RouteOwner+"/revoke", s.requireRole(market.RoleOwner, s.handleRevokeAdmin)).Methods(http.MethodPost)

	r.HandleFunc(market.RouteTransactions, s.handleTransactions).Methods(http.MethodGet)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireRole gates a handler on a resolved role. Denials redirect to the
// login route, matching the frontend's ProtectedRoute.
func (s *Server) requireRole(role market.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := s.svc.Roles.Resolve()
		if !market.Allows(rs, role) {
			log.Debug("Route denied", "path", r.URL.Path, "role", role)
			http.Redirect(w, r, market.RouteLogin, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// ──────────────────────────────────────────────
//  Login view
// ──────────────────────────────────────────────

func (s *Server) handleLoginState(w http.ResponseWriter, r *http.Request) {
	account, connected := s.svc.Account()
	resp := map[string]interface{}{
		"state": s.svc.Login.State().String(),
	}
	if connected {
		resp["account"] = account.Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	addr, state, err := s.svc.Login.Connect(r.FormValue("passphrase"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account": addr.Hex(),
		"state":   state.String(),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Login.Register(r.Context()); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": s.svc.Login.State().String(),
	})
}

// ──────────────────────────────────────────────
//  Home view: browse, buy, request roles
// ──────────────────────────────────────────────

type productView struct {
	market.Product
	ImageURL string `json:"image_url"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.User()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	products, err := s.svc.Catalog.Browse()
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: *p, ImageURL: s.svc.Catalog.ImageURL(p)})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":     user,
		"products": views,
	})
}

func (s *Server) handleRequestSeller(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SellerQueue.Submit(r.Context()); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Seller request submitted"})
}

func (s *Server) handleRequestAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.AdminQueue.Submit(r.Context()); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin request submitted"})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Catalog.Buy(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Purchase confirmed"})
}

// ──────────────────────────────────────────────
//  Listing view (seller-only)
// ──────────────────────────────────────────────

func (s *Server) handleListForm(w http.ResponseWriter, r *http.Request) {
	// The SPA renders a form here; the API just acknowledges access.
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"max_image_bytes": market.MaxImageSize,
	})
}

func (s *Server) handleListProduct(w http.ResponseWriter, r *http.Request) {
	input := &market.ListingInput{}
	if err := r.ParseMultipartForm(market.MaxImageSize + 1<<20); err == nil {
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			input.ImageFile = file
			input.ImageName = header.Filename
			input.ImageSize = header.Size
		}
	} else if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	input.Name = r.FormValue("name")
	input.Price = r.FormValue("price")
	input.ImageURL = r.FormValue("imageUrl")

	if err := s.svc.Catalog.List(r.Context(), input); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product listed successfully"})
}

// ──────────────────────────────────────────────
//  Approval views (/admin, /owner)
// ──────────────────────────────────────────────

func (s *Server) handleSellerRequests(w http.ResponseWriter, r *http.Request) {
	s.servePending(w, s.svc.SellerQueue)
}

func (s *Server) handleAdminRequests(w http.ResponseWriter, r *http.Request) {
	s.servePending(w, s.svc.AdminQueue)
}

func (s *Server) servePending(w http.ResponseWriter, q *market.RequestQueue) {
	pending, err := q.Pending()
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": pending})
}

type processForm struct {
	ID      uint64 `json:"id"`
	Approve bool   `json:"approve"`
}

func (s *Server) handleProcessSeller(w http.ResponseWriter, r *http.Request) {
	s.serveProcess(w, r, s.svc.ProcessSellerRequest)
}

func (s *Server) handleProcessAdmin(w http.ResponseWriter, r *http.Request) {
	s.serveProcess(w, r, s.svc.ProcessAdminRequest)
}

// serveProcess settles one request and responds with the reloaded pending
// list, so the caller renders confirmed state without a second round trip.
func (s *Server) serveProcess(w http.ResponseWriter, r *http.Request,
	process func(ctx context.Context, id uint64, approve bool) ([]*market.RoleRequest, error)) {
	var form processForm
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		id, err := strconv.ParseUint(r.FormValue("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		form.ID = id
		form.Approve = r.FormValue("approve") == "true"
	}

	pending, err := process(r.Context(), form.ID, form.Approve)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": pending})
}

func (s *Server) handleRevokeSeller(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress(r.FormValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.RevokeSeller(r.Context(), addr); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Seller rights revoked for " + addr.Hex(),
	})
}

func (s *Server) handleRevokeAdmin(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress(r.FormValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.RevokeAdmin(r.Context(), addr); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Admin rights revoked for " + addr.Hex(),
	})
}

// ──────────────────────────────────────────────
//  Transactions view
// ──────────────────────────────────────────────

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	activity, err := s.svc.Activity()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// ──────────────────────────────────────────────
//  Helpers
// ──────────────────────────────────────────────

var errInvalidAddress = errors.New("web: invalid address")

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// statusFor maps workflow errors to HTTP statuses: validation failures are
// the caller's fault, in-flight duplicates conflict, everything reaching
// the node surfaces as a bad gateway with the raw error text.
func statusFor(err error) int {
	switch {
	case errors.Is(err, market.ErrNotConnected),
		errors.Is(err, market.ErrNoWallet),
		errors.Is(err, market.ErrNoAccounts):
		return http.StatusUnauthorized
	case errors.Is(err, market.ErrActionInFlight):
		return http.StatusConflict
	case errors.Is(err, market.ErrMissingFields),
		errors.Is(err, market.ErrMalformedPrice),
		errors.Is(err, market.ErrNegativePrice),
		errors.Is(err, market.ErrPricePrecision),
		errors.Is(err, market.ErrNotAnImage),
		errors.Is(err, market.ErrImageTooLarge),
		errors.Is(err, market.ErrNoPinner),
		errors.Is(err, market.ErrSoldOut),
		errors.Is(err, market.ErrAlreadyRegistered):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Encoding response failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
