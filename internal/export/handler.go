package export

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/activity-tracker/internal/transport"
	"github.com/frahmantamala/activity-tracker/pkg/logger"
)

// maxImportBytes bounds the import payload; snapshots live well under the
// storage soft limit so anything bigger is garbage.
const maxImportBytes = 16 << 20

type ServiceAPI interface {
	Export() *Document
	Import(data []byte) (*Document, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Export handles GET /export, served as a download attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc := h.Service.Export()

	filename := fmt.Sprintf("activity-tracker-export-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.WriteJSON(w, http.StatusOK, doc)
}

// Import handles POST /import
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	doc, err := h.Service.Import(data)
	if err != nil {
		h.Logger.Error("Import: failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "imported",
		"users":      len(doc.Users),
		"activities": len(doc.Activities),
	})
}
