package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response. Table titles and names are user text, so
// HTML escaping is left to whoever renders them.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}
