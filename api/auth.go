package api

import (
	"net/http"

	"descrow/auth"
	"descrow/rest"
)

func (s *Server) postRegister(w http.ResponseWriter, r *http.Request) error {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err)
	}

	user, err := s.auth.Register(r.Context(), req)
	if err != nil {
		return err
	}

	s.replyJSON(w, http.StatusCreated, rest.RegisterResponse{
		ID:      user.ID,
		Email:   user.Email,
		Address: user.Address,
		Role:    string(user.Role),
	})
	return nil
}

func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) error {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err)
	}

	result, err := s.auth.Login(r.Context(), req)
	if err != nil {
		return err
	}

	s.replyJSON(w, http.StatusOK, rest.LoginResponse{
		Token:   result.Token,
		Address: result.User.Address,
	})
	return nil
}
