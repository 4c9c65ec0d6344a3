package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
	"github.com/fbranqinho/sportify-studio-sub001/internal/queue"
	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
	"github.com/fbranqinho/sportify-studio-sub001/internal/schedule"
	"github.com/fbranqinho/sportify-studio-sub001/internal/service"
)

// BookingHandler covers the reservation lifecycle: booking a slot,
// listing bookings, payment and cancellation.
type BookingHandler struct {
	Pitches      *repository.PitchRepo
	Reservations *repository.ReservationRepo
	Promotions   *repository.PromotionRepo
}

func NewBookingHandler(p *repository.PitchRepo, r *repository.ReservationRepo,
	pr *repository.PromotionRepo) *BookingHandler {
	return &BookingHandler{Pitches: p, Reservations: r, Promotions: pr}
}

// bookReq identifies the slot to book.  The hour may be sent either as
// a number or as the HH:MM label the schedule grid renders.
type bookReq struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
	Time string `json:"time"`
}

type reservationResp struct {
	ID               uint64    `json:"id"`
	PitchID          uint64    `json:"pitch_id"`
	StartsAt         time.Time `json:"starts_at"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	TotalAmountCents uint32    `json:"total_amount_cents"`
	PaymentRef       *string   `json:"payment_ref,omitempty"`
}

func reservationPart(r model.Reservation) reservationResp {
	return reservationResp{
		ID:               r.ID,
		PitchID:          r.PitchID,
		StartsAt:         r.StartsAt,
		Status:           r.Status,
		PaymentStatus:    r.PaymentStatus,
		TotalAmountCents: r.TotalAmountCents,
		PaymentRef:       r.PaymentRef,
	}
}

// Book reserves an available slot for the authenticated user.  The
// slot is re-resolved server side, so the price charged is the price
// the schedule showed, promotions included, and only AVAILABLE slots
// can be taken.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pitchID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	if req.Time != "" {
		hour, ok := schedule.ParseHourLabel(req.Time)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time, expected HH:MM"})
		}
		req.Hour = hour
	}
	if req.Hour < 0 || req.Hour > 23 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hour"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pitch, err := h.Pitches.GetByID(ctx, pitchID)
	if err != nil {
		return repoError(c, err)
	}
	if req.Hour < pitch.OpenFrom || req.Hour >= pitch.OpenTo {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pitch is closed at that hour"})
	}

	reservations, err := h.Reservations.ListForPitchDay(ctx, pitch.ID, day)
	if err != nil {
		return repoError(c, err)
	}
	promotions, err := h.Promotions.ListActiveOn(ctx, day)
	if err != nil {
		return repoError(c, err)
	}

	info := schedule.Resolve(time.Now().UTC(), day, req.Hour, pitch, actorFrom(c),
		reservations, nil, promotions)
	if info.Status != schedule.StatusAvailable {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  "slot is not available",
			"status": info.Status,
		})
	}

	reservation := model.Reservation{
		PitchID:          pitch.ID,
		UserID:           userID,
		StartsAt:         time.Date(day.Year(), day.Month(), day.Day(), req.Hour, 0, 0, 0, time.UTC),
		Status:           model.ReservationPending,
		PaymentStatus:    model.PaymentPending,
		TotalAmountCents: info.PriceCents,
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return repoError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Reservations.CreateTx(ctx, tx, &reservation); err != nil {
		return repoError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return repoError(c, err)
	}
	committed = true

	return c.JSON(http.StatusCreated, reservationPart(reservation))
}

// Mine lists the authenticated user's reservations, most recent first.
func (h *BookingHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]reservationResp, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, reservationPart(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get returns one reservation belonging to the authenticated user.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservation, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if reservation.UserID != userID && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, reservationPart(reservation))
}

// Pay settles a pending reservation and confirms it.  A payment event
// is published to the queue; publish failures are logged but never
// fail the payment.
func (h *BookingHandler) Pay(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ref := "PAY-" + uuid.NewString()
	reservation, err := h.Reservations.MarkPaid(ctx, userID, id, ref)
	if err != nil {
		return repoError(c, err)
	}

	pitch, err := h.Pitches.GetByID(ctx, reservation.PitchID)
	if err != nil {
		return repoError(c, err)
	}
	ev := queue.ReservationPaidEvent{
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		PitchID:       pitch.ID,
		PitchName:     pitch.Name,
		Sport:         pitch.Sport,
		StartsAt:      reservation.StartsAt,
		AmountCents:   reservation.TotalAmountCents,
		PaymentRef:    ref,
		PaidAt:        time.Now().UTC(),
	}
	go func() {
		if err := service.PublishReservationPaid(ev); err != nil {
			log.Printf("booking: publish paid event: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, reservationPart(reservation))
}

// Cancel frees a slot before its hour starts.  The reservation must
// belong to the caller.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.Cancel(ctx, userID, id, time.Now().UTC()); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation canceled"})
}
