package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lexgraph/pkg/buildinfo"
	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/graph"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// CreateSessionRequest starts a session from an explicit sense id or from
// the first sense of a word.
type CreateSessionRequest struct {
	Seed string `json:"seed,omitempty"`
	Word string `json:"word,omitempty"`
	POS  string `json:"pos,omitempty"` // defaults to "n"

	// ExpandSeed overrides the server default when set.
	ExpandSeed *bool `json:"expand_seed,omitempty"`
}

// SessionResponse is returned by session create and get.
type SessionResponse struct {
	ID    string      `json:"id"`
	Graph graph.Graph `json:"graph"`
}

// ExpandResponse reports the outcome of one expansion.
type ExpandResponse struct {
	Node            string        `json:"node"`
	AlreadyExpanded bool          `json:"already_expanded"`
	NewNodes        []graph.Node  `json:"new_nodes"`
	NewEdges        []graph.Edge  `json:"new_edges"`
	Skipped         []SkippedJSON `json:"skipped,omitempty"`
}

// SkippedJSON describes a pointer left out of an expansion.
type SkippedJSON struct {
	Relation string `json:"relation"`
	Target   string `json:"target"`
	Error    string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
		"build":    buildinfo.Info(),
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, lxerrors.Wrap(lxerrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	seed, err := s.resolveSeed(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.cfg.Explore
	if req.ExpandSeed != nil {
		opts.ExpandSeed = *req.ExpandSeed
	}
	x, err := explore.New(r.Context(), s.db, seed, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := s.sessions.add(x)
	s.logger.Info("session created", "session", sess.id, "seed", x.Seed())

	writeJSON(w, http.StatusCreated, SessionResponse{ID: sess.id, Graph: graph.FromExplorer(x)})
}

func (s *Server) resolveSeed(r *http.Request, req CreateSessionRequest) (lexicon.SenseID, error) {
	switch {
	case req.Seed != "" && req.Word != "":
		return lexicon.SenseID{}, lxerrors.New(lxerrors.ErrCodeInvalidInput, "seed and word are mutually exclusive")
	case req.Seed != "":
		return lexicon.ParseSenseID(req.Seed)
	case req.Word != "":
		if err := lxerrors.ValidateLemma(req.Word); err != nil {
			return lexicon.SenseID{}, err
		}
		pos := lexicon.Noun
		if req.POS != "" {
			p, err := lexicon.ParsePartOfSpeech(req.POS)
			if err != nil {
				return lexicon.SenseID{}, err
			}
			pos = p
		}
		id, err := lexicon.FirstSense(r.Context(), s.db, lxerrors.NormalizeLemma(req.Word), pos)
		switch {
		case errors.Is(err, lexicon.ErrNoWordIndex):
			return lexicon.SenseID{}, lxerrors.Wrap(lxerrors.ErrCodeUnsupported, err, "word lookup")
		case errors.Is(err, lexicon.ErrNotFound):
			return lexicon.SenseID{}, lxerrors.Wrap(lxerrors.ErrCodeNotFound, err, "word %q", req.Word)
		}
		return id, err
	default:
		return lexicon.SenseID{}, lxerrors.New(lxerrors.ErrCodeInvalidInput, "either seed or word is required")
	}
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{ID: sess.id, Graph: graph.FromExplorer(sess.x)})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.remove(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session ended",
		"session", sess.id,
		"nodes", sess.x.Graph().NodeCount(),
		"age", time.Since(sess.created).Round(time.Second))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) expandNode(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := lexicon.ParseSenseID(chi.URLParam(r, "senseID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := sess.expand(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expandResponse(res))
}

func expandResponse(res *explore.Result) ExpandResponse {
	out := ExpandResponse{
		Node:            res.Node.ID().String(),
		AlreadyExpanded: res.AlreadyExpanded,
		NewNodes:        make([]graph.Node, 0, len(res.NewNodes)),
		NewEdges:        make([]graph.Edge, 0, len(res.NewEdges)),
	}
	for _, n := range res.NewNodes {
		out.NewNodes = append(out.NewNodes, graph.NodeOf(n))
	}
	for _, e := range res.NewEdges {
		out.NewEdges = append(out.NewEdges, graph.EdgeOf(e))
	}
	for _, sk := range res.Skipped {
		out.Skipped = append(out.Skipped, SkippedJSON{
			Relation: sk.Pointer.Label(),
			Target:   sk.Pointer.Target.String(),
			Error:    sk.Err.Error(),
		})
	}
	return out
}
