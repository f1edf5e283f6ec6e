package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Notifier publishes the transient user-facing notifications the admin
// UI renders as toasts. Satisfied by *ws.Hub.
type Notifier interface {
	Notify(level, title, message string)
}

// noopNotifier keeps handlers usable when no hub is wired (tests).
type noopNotifier struct{}

func (noopNotifier) Notify(level, title, message string) {}

func orNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseIntParam(s string) (int, error) {
	return strconv.Atoi(s)
}

func decodeBody(r *http.Request, into any) error {
	return json.NewDecoder(r.Body).Decode(into)
}
