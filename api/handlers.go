/*
handlers.go - HTTP API handlers for the salary ticker

PURPOSE:
  Exposes the ticker's output and the data it reads via a small REST API.
  The ticker itself never talks HTTP; handlers either read what it last
  published or write to the stores it reads on the next tick.

ENDPOINTS:
  Tick:
    GET    /api/tick                   Latest snapshot
    GET    /api/tick/stream            Server-sent events, one per tick
    GET    /api/tray                   Tray title, working flag, icon frame

  Settings:
    GET    /api/settings               Current settings
    PUT    /api/settings               Validate, save, signal the ticker
    POST   /api/settings/reset         Delete all user settings

  Today:
    GET    /api/vacation               Today's vacation flag
    POST   /api/vacation               Mark today as vacation
    DELETE /api/vacation               Clear it
    GET    /api/schedule/today         Today's schedule override
    PUT    /api/schedule/today         Set it
    DELETE /api/schedule/today         Clear it
    GET    /api/work-completed/ack     Whether today's completion was seen
    POST   /api/work-completed/ack     Acknowledge it

  Pay period:
    GET    /api/pay-period             Period containing today
    GET    /api/pay-period/days.csv    The period's days as CSV

  Recovery:
    GET    /api/recovery/{name}        Raw recovery document
    PUT    /api/recovery/{name}        Replace it
    DELETE /api/recovery/{name}        Delete it

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Nothing stored yet
  - 413: Recovery document too large
  - 500: Internal errors

SECURITY NOTE:
  No authentication. The server is meant to listen on localhost only.

SEE ALSO:
  - dto.go: Request/response data structures
  - broadcast.go: Snapshot fan-out for the stream
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"

	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/settings"
	"github.com/warp/salary-ticker/ticker"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Settings    settings.Store
	Recovery    recovery.Store
	Overrides   *recovery.Overrides
	Signals     *ticker.Signals
	Ticker      *ticker.Ticker
	Tray        *ticker.TraySink
	Broadcaster *Broadcaster

	// Clock returns local wall-clock time. Tests replace it.
	Clock func() time.Time
}

// NewHandler creates a handler over the given stores.
func NewHandler(ss settings.Store, rs recovery.Store, signals *ticker.Signals) *Handler {
	return &Handler{
		Settings:    ss,
		Recovery:    rs,
		Overrides:   recovery.NewOverrides(rs),
		Signals:     signals,
		Broadcaster: NewBroadcaster(),
		Clock:       time.Now,
	}
}

func (h *Handler) today() payroll.Date {
	return payroll.DateOf(h.Clock())
}

// =============================================================================
// TICK ENDPOINTS
// =============================================================================

// GetTick returns the latest snapshot.
func (h *Handler) GetTick(w http.ResponseWriter, r *http.Request) {
	if h.Ticker == nil {
		writeError(w, http.StatusNotFound, "No snapshot yet", nil)
		return
	}
	snap := h.Ticker.Latest()
	if snap == nil {
		writeError(w, http.StatusNotFound, "No snapshot yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// StreamTicks pushes every published snapshot as a salary-tick event.
func (h *Handler) StreamTicks(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported", nil)
		return
	}

	id, ch := h.Broadcaster.Subscribe()
	defer h.Broadcaster.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Subscriber-ID", id)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: salary-tick\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// GetTray returns what the menubar item currently shows.
func (h *Handler) GetTray(w http.ResponseWriter, r *http.Request) {
	if h.Tray == nil {
		writeError(w, http.StatusNotFound, "No tray attached", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.Tray.State())
}

// =============================================================================
// SETTINGS ENDPOINTS
// =============================================================================

// GetSettings returns the stored settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Load(r.Context())
	if errors.Is(err, settings.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Settings not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// PutSettings validates and saves a settings document, then tells the ticker.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body", err)
		return
	}
	s, err := settings.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	if err := h.Settings.Save(r.Context(), s); err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid settings",
				Code:    "validation",
				Details: map[string]string{"field": verr.Field, "message": verr.Message},
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	h.notifySettingsChanged()
	writeJSON(w, http.StatusOK, s)
}

// ResetSettings deletes all user settings.
func (h *Handler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.Settings.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset data", err)
		return
	}
	h.notifySettingsChanged()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) notifySettingsChanged() {
	if h.Signals != nil {
		h.Signals.NotifySettingsChanged()
	}
}

// =============================================================================
// TODAY ENDPOINTS
// =============================================================================

func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	writeJSON(w, http.StatusOK, VacationDTO{Date: today, OnVacation: h.Overrides.VacationOn(r.Context(), today)})
}

func (h *Handler) SetVacation(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	if err := h.Overrides.SetVacation(r.Context(), today); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VacationDTO{Date: today, OnVacation: true})
}

func (h *Handler) ClearVacation(w http.ResponseWriter, r *http.Request) {
	if err := h.Overrides.ClearVacation(r.Context()); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VacationDTO{Date: h.today(), OnVacation: false})
}

func (h *Handler) GetTodaySchedule(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	writeJSON(w, http.StatusOK, ScheduleDTO{Date: today, Override: h.Overrides.ScheduleOn(r.Context(), today)})
}

func (h *Handler) SetTodaySchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	today := h.today()
	if err := h.Overrides.SetTodaySchedule(r.Context(), today, req.WorkStartTime, req.WorkEndTime); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{
		Date:     today,
		Override: &payroll.ScheduleOverride{Start: req.WorkStartTime, End: req.WorkEndTime},
	})
}

func (h *Handler) ClearTodaySchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Overrides.ClearTodaySchedule(r.Context()); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{Date: h.today()})
}

func (h *Handler) GetWorkCompletedAck(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	writeJSON(w, http.StatusOK, AckDTO{Date: today, Acknowledged: h.Overrides.AcknowledgedOn(r.Context(), today)})
}

func (h *Handler) AckWorkCompleted(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	if err := h.Overrides.Acknowledge(r.Context(), today); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AckDTO{Date: today, Acknowledged: true})
}

// =============================================================================
// PAY PERIOD ENDPOINTS
// =============================================================================

// loadConfig returns the payroll config or writes the error response.
func (h *Handler) loadConfig(w http.ResponseWriter, r *http.Request) (payroll.Config, bool) {
	s, err := h.Settings.Load(r.Context())
	if errors.Is(err, settings.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Settings not found", err)
		return payroll.Config{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return payroll.Config{}, false
	}
	return s.PayrollConfig(), true
}

func (h *Handler) GetPayPeriod(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.loadConfig(w, r)
	if !ok {
		return
	}

	today := h.today()
	period := payroll.ResolvePayPeriod(today, cfg.PayDay)
	writeJSON(w, http.StatusOK, PayPeriodDTO{
		Start:           period.Start,
		End:             period.End,
		PayDay:          cfg.PayDay,
		Length:          period.Length(),
		WorkDays:        payroll.CountWorkDays(period.Start, period.End, cfg.WorkDays),
		WorkedDays:      payroll.CountWorkDays(period.Start, today, cfg.WorkDays),
		IsPayday:        payroll.IsPayday(today, cfg.PayDay),
		DaysUntilPayday: payroll.DaysUntilPayday(today, cfg.PayDay),
	})
}

// ExportPayPeriodDays writes one CSV row per day of the current period.
func (h *Handler) ExportPayPeriodDays(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.loadConfig(w, r)
	if !ok {
		return
	}

	today := h.today()
	period := payroll.ResolvePayPeriod(today, cfg.PayDay)
	rows := make([]*PeriodDayRow, 0, period.Length())
	for _, d := range period.Days() {
		rows = append(rows, &PeriodDayRow{
			Date:    d.String(),
			Weekday: d.Weekday().String(),
			WorkDay: cfg.WorkDays.Contains(d.Weekday()),
			Payday:  d.Equal(period.Start),
			Worked:  d.Before(today) && cfg.WorkDays.Contains(d.Weekday()),
		})
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"pay-period-%s.csv\"", period.Start))
	if err := gocsv.Marshal(rows, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write CSV", err)
	}
}

// =============================================================================
// RECOVERY ENDPOINTS
// =============================================================================

func (h *Handler) GetRecovery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := h.Recovery.Load(r.Context(), name)
	if err != nil {
		writeRecoveryError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) PutRecovery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := io.ReadAll(io.LimitReader(r.Body, recovery.MaxDataBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body", err)
		return
	}
	if err := h.Recovery.Save(r.Context(), name, data); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "status": "saved"})
}

func (h *Handler) DeleteRecovery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Recovery.Delete(r.Context(), name); err != nil {
		writeRecoveryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "status": "deleted"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeRecoveryError maps recovery error kinds to HTTP status codes.
func writeRecoveryError(w http.ResponseWriter, err error) {
	if errors.Is(err, recovery.ErrFileNotFound) {
		writeError(w, http.StatusNotFound, "Recovery document not found", err)
		return
	}

	var rerr *recovery.Error
	if !errors.As(err, &rerr) {
		writeError(w, http.StatusInternalServerError, "Recovery store failed", err)
		return
	}

	status := http.StatusInternalServerError
	switch rerr.Kind {
	case recovery.KindValidation, recovery.KindParse:
		status = http.StatusBadRequest
	case recovery.KindTooLarge:
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, ErrorResponse{Error: rerr.Message, Code: string(rerr.Kind), Details: err.Error()})
}
