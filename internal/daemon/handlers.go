package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/theirongolddev/kcal/internal/quantity"
	"github.com/theirongolddev/kcal/internal/tracker"
)

var errBadBody = errors.New("malformed JSON body")

// amount is a calorie value in a request body. It accepts a JSON number
// or a string expression such as "250+180". Anything that does not
// evaluate to a whole number leaves it unset, which the tracker treats
// as rejected input.
type amount struct {
	n     int
	valid bool
}

func (a *amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		s = str
	}
	n, err := quantity.Parse(s)
	if err != nil {
		*a = amount{}
		return nil
	}
	*a = amount{n: n, valid: true}
	return nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Dashboard())
}

func (s *Service) handleChart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Chart())
}

func (s *Service) handleHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.History())
}

func (s *Service) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Presets())
}

func (s *Service) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var dir tracker.Direction
	switch strings.ToLower(req.Direction) {
	case "backward", "back", "prev":
		dir = tracker.Backward
	case "forward", "next":
		dir = tracker.Forward
	default:
		s.respond(w, "navigate", false, nil)
		return
	}

	before := s.tracker.Viewing()
	s.tracker.Navigate(dir)
	s.respond(w, "navigate", s.tracker.Viewing() != before, nil)
}

func (s *Service) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta amount `json:"delta"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Delta.valid {
		s.respond(w, "adjust", false, nil)
		return
	}
	changed, err := s.tracker.AdjustCalories(req.Delta.n)
	s.respond(w, "adjust", changed, err)
}

func (s *Service) handleSetCalories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value amount `json:"value"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Value.valid {
		s.respond(w, "calories", false, nil)
		return
	}
	changed, err := s.tracker.SetCalories(req.Value.n)
	s.respond(w, "calories", changed, err)
}

func (s *Service) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value amount `json:"value"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Value.valid {
		s.respond(w, "goal", false, nil)
		return
	}
	changed, err := s.tracker.SetGoal(req.Value.n)
	s.respond(w, "goal", changed, err)
}

func (s *Service) handleAddPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Calories amount `json:"calories"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Calories.valid {
		s.respond(w, "preset_added", false, nil)
		return
	}

	p, changed, err := s.tracker.AddPreset(req.Name, req.Calories.n)
	if err != nil || !changed {
		s.respond(w, "preset_added", changed, err)
		return
	}
	s.publishIfChanged("preset_added")
	writeJSON(w, http.StatusOK, MutationResult{
		Changed:   true,
		Dashboard: s.tracker.Dashboard(),
		Preset:    &p,
	})
}

func (s *Service) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	id, ok := presetID(r)
	if !ok {
		s.respond(w, "preset_deleted", false, nil)
		return
	}
	changed, err := s.tracker.DeletePreset(id)
	s.respond(w, "preset_deleted", changed, err)
}

func (s *Service) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	id, ok := presetID(r)
	if !ok {
		s.respond(w, "preset_applied", false, nil)
		return
	}
	changed, err := s.tracker.ApplyPreset(id)
	s.respond(w, "preset_applied", changed, err)
}

func presetID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// respond writes the mutation result. A write failure is a 500; a
// rejected input is a 200 with changed=false.
func (s *Service) respond(w http.ResponseWriter, cause string, changed bool, err error) {
	if err != nil {
		log.Printf("kcal daemon %s: %v", cause, err)
		s.setError(err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if changed {
		s.publishIfChanged(cause)
	}
	writeJSON(w, http.StatusOK, MutationResult{
		Changed:   changed,
		Dashboard: s.tracker.Dashboard(),
	})
}
