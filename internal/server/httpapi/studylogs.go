package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/gorilla/mux"
)

const studyLogNotFound = "Study log not found."

func (s *Server) listStudyLogs(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.StudyLogs.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createStudyLog(w http.ResponseWriter, r *http.Request) {
	var in records.StudyLogInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	l, err := s.deps.StudyLogs.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) updateStudyLog(w http.ResponseWriter, r *http.Request) {
	var patch records.StudyLogPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeServiceError(w, r, err, studyLogNotFound)
		return
	}

	l, err := s.deps.StudyLogs.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		s.writeServiceError(w, r, err, studyLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) deleteStudyLog(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.StudyLogs.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err, studyLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
