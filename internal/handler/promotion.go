package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
)

// PromotionHandler serves promotion management for promoters and
// owners.
type PromotionHandler struct {
	Promotions *repository.PromotionRepo
}

func NewPromotionHandler(p *repository.PromotionRepo) *PromotionHandler {
	return &PromotionHandler{Promotions: p}
}

type promotionReq struct {
	Name            string   `json:"name"`
	DiscountPercent uint8    `json:"discount_percent"`
	StartsOn        string   `json:"starts_on"`
	EndsOn          string   `json:"ends_on"`
	Weekdays        []int    `json:"weekdays"`
	Hours           []int    `json:"hours"`
	PitchIDs        []uint64 `json:"pitch_ids"`
}

type promotionResp struct {
	ID              uint64   `json:"id"`
	CreatorID       uint64   `json:"creator_id"`
	Name            string   `json:"name"`
	DiscountPercent uint8    `json:"discount_percent"`
	StartsOn        string   `json:"starts_on"`
	EndsOn          string   `json:"ends_on"`
	Weekdays        []int    `json:"weekdays"`
	Hours           []int    `json:"hours"`
	PitchIDs        []uint64 `json:"pitch_ids"`
}

func promotionPart(p model.Promotion) promotionResp {
	weekdays := make([]int, 0, len(p.Weekdays))
	for _, wd := range p.Weekdays {
		weekdays = append(weekdays, int(wd))
	}
	return promotionResp{
		ID:              p.ID,
		CreatorID:       p.CreatorID,
		Name:            p.Name,
		DiscountPercent: p.DiscountPercent,
		StartsOn:        p.StartsOn.Format("2006-01-02"),
		EndsOn:          p.EndsOn.Format("2006-01-02"),
		Weekdays:        weekdays,
		Hours:           p.Hours,
		PitchIDs:        p.PitchIDs,
	}
}

// Create registers a promotion.  PROMOTER, OWNER or ADMIN.
func (h *PromotionHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req promotionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.DiscountPercent == 0 || req.DiscountPercent > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_percent must be 1-100"})
	}
	startsOn, err := time.Parse("2006-01-02", req.StartsOn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_on, expected YYYY-MM-DD"})
	}
	endsOn, err := time.Parse("2006-01-02", req.EndsOn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_on, expected YYYY-MM-DD"})
	}
	if endsOn.Before(startsOn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_on is before starts_on"})
	}
	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		if wd < 0 || wd > 6 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekdays must be 0-6"})
		}
		weekdays = append(weekdays, time.Weekday(wd))
	}
	for _, hr := range req.Hours {
		if hr < 0 || hr > 23 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "hours must be 0-23"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	promo := model.Promotion{
		CreatorID:       userID,
		Name:            strings.TrimSpace(req.Name),
		DiscountPercent: req.DiscountPercent,
		StartsOn:        startsOn,
		EndsOn:          endsOn,
		Weekdays:        weekdays,
		Hours:           req.Hours,
		PitchIDs:        req.PitchIDs,
	}
	if err := h.Promotions.Create(ctx, &promo); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, promotionPart(promo))
}

// List returns every promotion.  PROMOTER, OWNER or ADMIN.
func (h *PromotionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	promos, err := h.Promotions.List(ctx)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]promotionResp, 0, len(promos))
	for _, p := range promos {
		out = append(out, promotionPart(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"promotions": out})
}

// Delete removes a promotion created by the caller.
func (h *PromotionHandler) Delete(c echo.Context) error {
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

	if err := h.Promotions.Delete(ctx, userID, id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "promotion deleted"})
}
