// Package handler wires the HTTP surface: auth, complaint and worker
// endpoints, analytics, and the WebSocket event stream. Handlers translate
// between HTTP and the lifecycle engine; none of them touch complaint status,
// worker assignment or the history ledger directly.
package handler

import (
	"github.com/Aaryan-549/CivicPulse/internal/lifecycle"
	"github.com/Aaryan-549/CivicPulse/internal/media"
	"github.com/Aaryan-549/CivicPulse/internal/mlclient"
	"github.com/Aaryan-549/CivicPulse/internal/notifyhub"
	"github.com/Aaryan-549/CivicPulse/internal/storage"
)

// Handler carries the collaborators every endpoint group needs.
type Handler struct {
	Store     storage.Storage
	Lifecycle *lifecycle.Service
	Hub       *notifyhub.Hub
	ML        *mlclient.Client
	Media     media.Uploader
	JWTSecret []byte
}

func NewHandler(store storage.Storage, lc *lifecycle.Service, hub *notifyhub.Hub,
	ml *mlclient.Client, uploader media.Uploader, jwtSecret []byte) *Handler {
	return &Handler{
		Store:     store,
		Lifecycle: lc,
		Hub:       hub,
		ML:        ml,
		Media:     uploader,
		JWTSecret: jwtSecret,
	}
}
