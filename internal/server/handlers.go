package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/tisu/pkg/buildinfo"
	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/generate"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	tisuio "github.com/matzehuels/tisu/pkg/io"
	"github.com/matzehuels/tisu/pkg/pipeline"
	"github.com/matzehuels/tisu/pkg/segment"
	"github.com/matzehuels/tisu/pkg/tile"
)

// maxGenerateSize bounds /v1/generate maps per side.
const maxGenerateSize = 1024

// ApplyRequest is the body of POST /v1/apply.
type ApplyRequest struct {
	Grid     [][]tile.Tile        `json:"grid"`
	RuleSets []tisuio.RuleSetJSON `json:"rule_sets"`
	Seed     uint64               `json:"seed,omitempty"`
}

// ApplyResponse is the result of POST /v1/apply.
type ApplyResponse struct {
	Grid    [][]tile.Tile `json:"grid"`
	Changed int           `json:"changed"`
	Sets    int           `json:"sets"`
	Rules   int           `json:"rules"`
}

// SegmentsRequest is the body of POST /v1/segments.
type SegmentsRequest struct {
	Grid        [][]tile.Tile `json:"grid"`
	Transparent tile.Tile     `json:"transparent"`
}

// SegmentsResponse lists rects in scan order.
type SegmentsResponse struct {
	Rects []geom.Rect `json:"rects"`
}

// GenerateRequest is the body of POST /v1/generate.
type GenerateRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   uint64 `json:"seed"`
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !s.decode(w, r, &req) {
		return
	}
	input, err := grid.FromRows(req.Grid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sets, err := tisuio.DecodeRuleSets(req.RuleSets)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = pipeline.DefaultSeed
	}
	out, err := pipeline.ApplySeeded(input, sets, seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := ApplyResponse{Grid: out.Rows(), Changed: input.Diff(out)}
	for _, set := range sets {
		if set.Props.Active() {
			resp.Sets++
			resp.Rules += set.Len()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	var req SegmentsRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, err := grid.FromRows(req.Grid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rects := segment.Extract(g, req.Transparent)
	if rects == nil {
		rects = []geom.Rect{}
	}
	writeJSON(w, http.StatusOK, SegmentsResponse{Rects: rects})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Width > maxGenerateSize || req.Height > maxGenerateSize {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidMapSize,
			"map size %dx%d exceeds %d", req.Width, req.Height, maxGenerateSize))
		return
	}
	g, err := generate.Generate(generate.Options{Size: geom.V(req.Width, req.Height), Seed: req.Seed})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"grid": generate.Tiles(g).Rows()})
}

// decode reads a JSON body, writing the error response itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.IsClientError(err) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}
	var body errorBody
	body.Error.Code = errors.GetCodeOr(err, errors.ErrCodeInternal)
	body.Error.Message = err.Error()
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
