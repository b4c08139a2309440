package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"sutplan.dev/internal/clients/plan"
	"sutplan.dev/internal/services"
)

const minWeek, maxWeek = 1, 54

func (app *Application) healthHandler(w http.ResponseWriter, _ *http.Request) {
	app.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (app *Application) scheduleHandler(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		http.Error(w, "group_id is required", http.StatusBadRequest)
		return
	}

	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < minWeek || week > maxWeek {
		http.Error(w, "week must be an integer between 1 and 54", http.StatusBadRequest)
		return
	}

	events, err := app.services.Schedule.GetSchedule(r.Context(), groupID, week)
	if err != nil {
		app.logger.Error("failed to get schedule",
			logging.ErrAttr(err), "group_id", groupID, "week", week)

		switch {
		case errors.Is(err, plan.ErrTimeout),
			errors.Is(err, plan.ErrTransport),
			errors.Is(err, plan.ErrInvalidFormat):
			http.Error(
				w,
				"cannot reach the university plan server",
				http.StatusBadGateway,
			)
		case errors.Is(err, services.ErrMalformedFeed):
			http.Error(w, "failed to parse plan feed", http.StatusInternalServerError)
		default:
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	app.writeJSON(w, http.StatusOK, events)
}

func (app *Application) writeJSON(
	w http.ResponseWriter,
	status int,
	data any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		app.logger.Error("failed to write response", logging.ErrAttr(err))
	}
}
