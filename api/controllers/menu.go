package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pratododia/cardapio-backend/api/responses"
	"github.com/pratododia/cardapio-backend/internal/dishes"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/events"
	"github.com/pratododia/cardapio-backend/pkg/logger"
)

const streamHeartbeat = 15 * time.Second

// MenuStreamSource opens a live subscription to menu events.
type MenuStreamSource interface {
	SubscribeMenuEvents(ctx context.Context) (<-chan events.MenuEvent, func(), error)
}

// Menu lists the active dishes with their remaining stock.
func Menu(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		list, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"dishes": list})
	}
}

// MenuStream pushes menu/stock events to the client over SSE.
func MenuStream(source MenuStreamSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event stream unavailable"))
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		stream, cancel, err := source.SubscribeMenuEvents(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribe menu events"))
			return
		}
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case event, ok := <-stream:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					if logg != nil {
						logg.Error(r.Context(), "encode menu event", err)
					}
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
				flusher.Flush()
			}
		}
	}
}
