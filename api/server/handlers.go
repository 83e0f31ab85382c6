// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/movingrate/movingrate/rates"
)

// ObserveArgs is the body of a request to add a sample.
type ObserveArgs struct {
	Value *float64 `json:"value"`
}

type errorReply struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Healthy bool `json:"healthy"`
	}{Healthy: true})
}

func (s *Server) getRates(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.rates.Snapshot())
}

func (s *Server) getRate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)[nameVar]
	reading, ok := s.rates.Snapshot()[name]
	if !ok {
		s.writeError(w, http.StatusNotFound, errUnknownMetric)
		return
	}
	s.writeJSON(w, http.StatusOK, reading)
}

var (
	errUnknownMetric = errors.New("metric has not been reported")
	errMissingValue  = errors.New("missing value")
	errEncoding      = errors.New("failed to encode reply")
)

func (s *Server) observe(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)[nameVar]

	var args ObserveArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if args.Value == nil {
		s.writeError(w, http.StatusBadRequest, errMissingValue)
		return
	}

	err := s.rates.Observe(name, *args.Value)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, rates.ErrClosed):
		s.writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.writeError(w, http.StatusBadRequest, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Debug("API request failed",
		zap.Int("status", status),
		zap.Error(err),
	)
	s.writeJSON(w, status, errorReply{Error: err.Error()})
}

// writeJSON encodes [reply] before writing the header so that a reply that
// can't be encoded becomes a 500 rather than a truncated 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, reply interface{}) {
	body, err := json.Marshal(reply)
	if err != nil {
		s.log.Warn("failed to encode API reply",
			zap.Error(err),
		)
		body, _ = json.Marshal(errorReply{Error: errEncoding.Error()})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.log.Debug("failed to write API reply",
			zap.Error(err),
		)
	}
}
