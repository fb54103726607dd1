package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/recurrence"
	"github.com/dineflow/dineflow/internal/core/services"
)

type ScheduleHandler struct {
	svc *services.AvailabilityService
}

func NewScheduleHandler(svc *services.AvailabilityService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

type createScheduleRequest struct {
	OfferingID      string  `json:"offering_id"`
	Weekdays        []int   `json:"weekdays,omitempty"`
	RuleFreq        string  `json:"rule_freq,omitempty"`
	RuleInterval    int     `json:"rule_interval,omitempty"`
	RuleCount       int     `json:"rule_count,omitempty"`
	RuleUntil       string  `json:"rule_until,omitempty"`
	RuleByWeekday   []int   `json:"rule_by_weekday,omitempty"`
	RuleByMonthDay  []int   `json:"rule_by_month_day,omitempty"`
	StartTime       string  `json:"start_time"`
	LastSeating     string  `json:"last_seating"`
	IntervalMinutes int     `json:"interval_minutes"`
	CapacityMode    string  `json:"capacity_mode"`
	MaxPerSlot      int     `json:"max_per_slot,omitempty"`
	TableSeats      []int   `json:"table_seats,omitempty"`
}

func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	offeringID, err := uuid.Parse(req.OfferingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offering id")
		return
	}

	def := &domain.ScheduleDefinition{
		OfferingID:      offeringID,
		StartTime:       req.StartTime,
		LastSeating:     req.LastSeating,
		IntervalMinutes: req.IntervalMinutes,
	}
	for _, d := range req.Weekdays {
		def.Weekdays = append(def.Weekdays, time.Weekday(d))
	}

	switch req.CapacityMode {
	case "table":
		def.Capacity = domain.TableCapacity{TableSeats: req.TableSeats}
	default:
		def.Capacity = domain.SimpleCapacity{MaxPerSlot: req.MaxPerSlot}
	}

	if req.RuleFreq != "" {
		rule, err := buildRule(req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		def.Rule = rule
	}

	if err := h.svc.CreateSchedule(r.Context(), def); err != nil {
		writeBookingError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(def)
}

func buildRule(req createScheduleRequest) (*recurrence.Rule, error) {
	rule := &recurrence.Rule{
		Freq:       recurrence.Frequency(req.RuleFreq),
		Interval:   req.RuleInterval,
		Count:      req.RuleCount,
		ByMonthDay: req.RuleByMonthDay,
	}
	for _, d := range req.RuleByWeekday {
		rule.ByWeekday = append(rule.ByWeekday, time.Weekday(d))
	}
	if req.RuleUntil != "" {
		until, err := time.Parse("2006-01-02", req.RuleUntil)
		if err != nil {
			return nil, err
		}
		rule.Until = &until
	}
	return rule, nil
}

type deactivateScheduleRequest struct {
	ScheduleID string `json:"schedule_id"`
}

func (h *ScheduleHandler) DeactivateSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req deactivateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid schedule id")
		return
	}

	if err := h.svc.DeactivateSchedule(r.Context(), id); err != nil {
		writeBookingError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
