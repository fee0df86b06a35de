package server

import (
	"log"
	"net/http"
	"sync/atomic"
)

type handler struct {
	page atomic.Pointer[Page]
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p := h.page.Load()

	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	var body []byte
	var mimeType string
	switch req.URL.Path {
	case "/", "/index.html":
		body, mimeType = p.HTML, "text/html; charset=utf-8"
	case "/rows.json":
		body, mimeType = p.JSON, "application/json"
	default:
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "no-store")
	if req.Method == http.MethodHead {
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
