package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/gorilla/mux"
)

const taskNotFound = "Task not found."

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Tasks.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in records.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	task, err := s.deps.Tasks.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	s.logger.Debug(r.Context(), "task created", "id", task.ID)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch records.TaskPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}

	task, err := s.deps.Tasks.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Tasks.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
