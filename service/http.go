package service

import (
	"bufio"
	"encoding/json"
	"net/http"
)

// HTTP registers zero-dependency net/http handlers for the count and
// enumerate operations at the given paths on mux. The handlers do not
// check the request method.
//
//	mux := http.NewServeMux()
//	svc := service.New()
//	service.HTTP(svc, mux, "/count", "/enumerate")
func HTTP(svc *Service, mux *http.ServeMux, countPath, enumeratePath string) {
	mux.HandleFunc(countPath, func(w http.ResponseWriter, r *http.Request) {
		handleCount(svc, w, r)
	})
	mux.HandleFunc(enumeratePath, func(w http.ResponseWriter, r *http.Request) {
		handleEnumerate(svc, w, r)
	})
}

func decodeRequest(r *http.Request) (Request, error) {
	var req Request
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func handleCount(svc *Service, w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := svc.Count(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleEnumerate streams one walk-string per line as it is emitted,
// flushing after every line so a client sees results as they arrive
// instead of buffered until the walk finishes.
func handleEnumerate(svc *Service, w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	bw := bufio.NewWriter(w)
	flusher, canFlush := w.(http.Flusher)

	sink := func(s string) {
		bw.WriteString(s)
		bw.WriteByte('\n')
		if canFlush {
			bw.Flush()
			flusher.Flush()
		}
	}
	if err := svc.Enumerate(req, sink); err != nil {
		bw.Flush()
		// Headers are already sent once streaming starts; report the
		// failure as a trailing line rather than a status code.
		w.Write([]byte("error: " + err.Error() + "\n"))
		return
	}
	bw.Flush()
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody(err))
}
