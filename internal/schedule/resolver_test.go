package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

var (
	testNow = time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	testDay = time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC) // a Monday
)

func testPitch(sport string) model.Pitch {
	return model.Pitch{
		ID:             7,
		OwnerID:        1,
		Name:           "Campo Norte",
		Sport:          sport,
		BasePriceCents: 5000,
		OpenFrom:       8,
		OpenTo:         23,
	}
}

func testReservation(paymentStatus string) model.Reservation {
	return model.Reservation{
		ID:               40,
		PitchID:          7,
		UserID:           3,
		StartsAt:         time.Date(2026, time.May, 4, 18, 0, 0, 0, time.UTC),
		Status:           model.ReservationConfirmed,
		PaymentStatus:    paymentStatus,
		TotalAmountCents: 4200,
	}
}

func practiceMatch(flags func(*model.Match)) model.Match {
	home := uint64(9)
	m := model.Match{
		ID:            60,
		ReservationID: 40,
		ManagerID:     5,
		HomeTeamID:    &home,
		Status:        model.MatchCollecting,
	}
	if flags != nil {
		flags(&m)
	}
	return m
}

func TestResolve_PastDominates(t *testing.T) {
	// Even with a paid reservation and a live match on the slot, any
	// slot starting before now is PAST.
	res := testReservation(model.PaymentPaid)
	res.StartsAt = time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	m := practiceMatch(nil)
	m.Status = model.MatchInProgress

	pastDay := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	info := Resolve(testNow, pastDay, 9, testPitch(model.SportFut7), Actor{ID: 3, Role: model.RolePlayer},
		[]model.Reservation{res}, []model.Match{m}, nil)
	if info.Status != StatusPast {
		t.Fatalf("expected PAST, got %s", info.Status)
	}
	if info.PriceCents != 5000 {
		t.Fatalf("past slot should report base price, got %d", info.PriceCents)
	}
	if info.Reservation != nil || info.Match != nil {
		t.Fatal("past slot must not attach reservation or match")
	}
}

func TestResolve_AvailableNoPromotion(t *testing.T) {
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut5), Actor{}, nil, nil, nil)
	if info.Status != StatusAvailable {
		t.Fatalf("expected AVAILABLE, got %s", info.Status)
	}
	if info.PriceCents != 5000 {
		t.Fatalf("expected base price 5000, got %d", info.PriceCents)
	}
	if info.Promotion != nil {
		t.Fatal("expected no promotion attached")
	}
}

func TestResolve_AvailableWithPromotion(t *testing.T) {
	promo := model.Promotion{
		ID:              2,
		DiscountPercent: 20,
		StartsOn:        testDay.AddDate(0, 0, -7),
		EndsOn:          testDay.AddDate(0, 0, 7),
		Weekdays:        []time.Weekday{time.Monday},
		Hours:           []int{18},
	}
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut5), Actor{}, nil, nil, []model.Promotion{promo})
	if info.Status != StatusAvailable {
		t.Fatalf("expected AVAILABLE, got %s", info.Status)
	}
	if info.PriceCents != 4000 {
		t.Fatalf("expected 20%% off 5000 = 4000, got %d", info.PriceCents)
	}
	if info.Promotion == nil || info.Promotion.ID != 2 {
		t.Fatal("expected promotion attached")
	}
}

func TestResolve_HighestDiscountWins(t *testing.T) {
	mk := func(id uint64, pct uint8) model.Promotion {
		return model.Promotion{
			ID:              id,
			DiscountPercent: pct,
			StartsOn:        testDay.AddDate(0, 0, -1),
			EndsOn:          testDay.AddDate(0, 0, 1),
			Weekdays:        []time.Weekday{time.Monday},
			Hours:           []int{18},
		}
	}
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut5), Actor{}, nil, nil,
		[]model.Promotion{mk(1, 10), mk(2, 25)})
	if info.Promotion == nil || info.Promotion.ID != 2 {
		t.Fatalf("expected the 25%% promotion, got %+v", info.Promotion)
	}
	if info.PriceCents != 3750 {
		t.Fatalf("expected 25%% off 5000 = 3750, got %d", info.PriceCents)
	}
}

func TestResolve_Booked(t *testing.T) {
	res := testReservation(model.PaymentPaid)
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: 3, Role: model.RolePlayer},
		[]model.Reservation{res}, nil, nil)
	if info.Status != StatusBooked {
		t.Fatalf("expected BOOKED, got %s", info.Status)
	}
	if info.PriceCents != res.TotalAmountCents {
		t.Fatalf("expected reservation total %d, got %d", res.TotalAmountCents, info.PriceCents)
	}
}

func TestResolve_PendingFallback(t *testing.T) {
	res := testReservation(model.PaymentPending)
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: 3, Role: model.RoleOwner},
		[]model.Reservation{res}, nil, nil)
	if info.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", info.Status)
	}
}

func TestResolve_LiveBeatsPending(t *testing.T) {
	res := testReservation(model.PaymentPending)
	m := practiceMatch(nil)
	m.Status = model.MatchInProgress
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: 3, Role: model.RolePlayer},
		[]model.Reservation{res}, []model.Match{m}, nil)
	if info.Status != StatusLive {
		t.Fatalf("expected LIVE to take priority, got %s", info.Status)
	}
	if info.Match == nil || info.Match.ID != m.ID {
		t.Fatal("expected the live match attached")
	}
}

func TestResolve_OpenForTeam(t *testing.T) {
	res := testReservation(model.PaymentPaid)
	m := practiceMatch(func(m *model.Match) { m.AllowChallenges = true })

	// Another manager sees the challenge offer, priced at zero.
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: 8, Role: model.RoleManager},
		[]model.Reservation{res}, []model.Match{m}, nil)
	if info.Status != StatusOpenForTeam {
		t.Fatalf("expected OPEN_FOR_TEAM, got %s", info.Status)
	}
	if info.PriceCents != 0 {
		t.Fatalf("challenge offers carry no price, got %d", info.PriceCents)
	}

	// The match's own manager never sees it.
	info = Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: m.ManagerID, Role: model.RoleManager},
		[]model.Reservation{res}, []model.Match{m}, nil)
	if info.Status == StatusOpenForTeam {
		t.Fatal("own manager must not receive OPEN_FOR_TEAM")
	}

	// A player never sees it either.
	info = Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: 8, Role: model.RolePlayer},
		[]model.Reservation{res}, []model.Match{m}, nil)
	if info.Status == StatusOpenForTeam {
		t.Fatal("a PLAYER must never receive OPEN_FOR_TEAM")
	}
}

func TestResolve_OpenForPlayersCapacityBoundary(t *testing.T) {
	res := testReservation(model.PaymentPaid)
	actor := Actor{ID: 11, Role: model.RolePlayer}

	roster := func(n int) []uint64 {
		ids := make([]uint64, n)
		for i := range ids {
			ids[i] = uint64(100 + i)
		}
		return ids
	}

	// FUT7 capacity is 14: a full roster closes the offer.
	full := practiceMatch(func(m *model.Match) {
		m.AllowExternalPlayers = true
		m.HomePlayerIDs = roster(7)
		m.AwayPlayerIDs = roster(7)
	})
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), actor,
		[]model.Reservation{res}, []model.Match{full}, nil)
	if info.Status == StatusOpenForPlayers {
		t.Fatal("full roster must not be open for players")
	}

	// One seat left keeps it open, priced at the per-player share.
	open := practiceMatch(func(m *model.Match) {
		m.AllowExternalPlayers = true
		m.HomePlayerIDs = roster(7)
		m.AwayPlayerIDs = roster(6)
	})
	info = Resolve(testNow, testDay, 18, testPitch(model.SportFut7), actor,
		[]model.Reservation{res}, []model.Match{open}, nil)
	if info.Status != StatusOpenForPlayers {
		t.Fatalf("expected OPEN_FOR_PLAYERS with 13/14 confirmed, got %s", info.Status)
	}
	if want := res.TotalAmountCents / 14; info.PriceCents != want {
		t.Fatalf("expected per-player share %d, got %d", want, info.PriceCents)
	}
}

func TestResolve_UnknownSportDisablesOpenForPlayers(t *testing.T) {
	res := testReservation(model.PaymentPaid)
	m := practiceMatch(func(m *model.Match) { m.AllowExternalPlayers = true })
	pitch := testPitch("PADEL")
	info := Resolve(testNow, testDay, 18, pitch, Actor{ID: 11, Role: model.RolePlayer},
		[]model.Reservation{res}, []model.Match{m}, nil)
	if info.Status == StatusOpenForPlayers {
		t.Fatal("zero capacity must disable OPEN_FOR_PLAYERS")
	}
	if info.Status != StatusBooked {
		t.Fatalf("expected fallthrough to BOOKED, got %s", info.Status)
	}
}

func TestResolve_CanceledReservationIgnored(t *testing.T) {
	res := testReservation(model.PaymentPaid)
	res.Status = model.ReservationCanceled
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{},
		[]model.Reservation{res}, nil, nil)
	if info.Status != StatusAvailable {
		t.Fatalf("canceled reservation must free the slot, got %s", info.Status)
	}
}

func TestResolve_SubHourDriftMatchesSlot(t *testing.T) {
	// A reservation stored at 18:07 still occupies the 18:00 slot.
	res := testReservation(model.PaymentPaid)
	res.StartsAt = time.Date(2026, time.May, 4, 18, 7, 31, 0, time.UTC)
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{},
		[]model.Reservation{res}, nil, nil)
	if info.Status != StatusBooked {
		t.Fatalf("expected BOOKED despite sub-hour drift, got %s", info.Status)
	}
	// And it does not leak into the neighbouring hour.
	info = Resolve(testNow, testDay, 19, testPitch(model.SportFut7), Actor{},
		[]model.Reservation{res}, nil, nil)
	if info.Status != StatusAvailable {
		t.Fatalf("expected 19:00 to stay AVAILABLE, got %s", info.Status)
	}
}

func TestResolve_PureAndIdempotent(t *testing.T) {
	res := testReservation(model.PaymentPending)
	m := practiceMatch(func(m *model.Match) {
		m.AllowChallenges = true
		m.AllowExternalPlayers = true
		m.HomePlayerIDs = []uint64{1, 2, 3}
	})
	promos := []model.Promotion{{
		ID: 1, DiscountPercent: 15,
		StartsOn: testDay.AddDate(0, 0, -1), EndsOn: testDay.AddDate(0, 0, 1),
		Weekdays: []time.Weekday{time.Monday}, Hours: []int{18},
	}}
	reservations := []model.Reservation{res}
	matches := []model.Match{m}

	wantRes := append([]model.Reservation(nil), reservations...)
	wantMatches := append([]model.Match(nil), matches...)
	wantPromos := append([]model.Promotion(nil), promos...)

	actor := Actor{ID: 8, Role: model.RoleManager}
	first := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), actor, reservations, matches, promos)
	second := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), actor, reservations, matches, promos)
	if first.Status != second.Status || first.PriceCents != second.PriceCents {
		t.Fatalf("resolver not idempotent: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(reservations, wantRes) || !reflect.DeepEqual(matches, wantMatches) || !reflect.DeepEqual(promos, wantPromos) {
		t.Fatal("resolver mutated its input collections")
	}
}

func TestResolve_ExactlyOneStatus(t *testing.T) {
	// Sweep actor roles over a slot that could superficially qualify
	// for several offers; every call must land on exactly one of the
	// known statuses.
	res := testReservation(model.PaymentPaid)
	m := practiceMatch(func(m *model.Match) {
		m.AllowChallenges = true
		m.AllowExternalPlayers = true
	})
	known := map[SlotStatus]bool{
		StatusPast: true, StatusLive: true, StatusOpenForTeam: true,
		StatusOpenForPlayers: true, StatusBooked: true, StatusPending: true, StatusAvailable: true,
	}
	roles := []string{"", model.RolePlayer, model.RoleManager, model.RoleOwner, model.RolePromoter, model.RoleReferee, model.RoleAdmin}
	for _, role := range roles {
		info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{ID: 8, Role: role},
			[]model.Reservation{res}, []model.Match{m}, nil)
		if !known[info.Status] {
			t.Fatalf("role %q produced unknown status %q", role, info.Status)
		}
	}
}

func TestResolve_FirstMatchInInputOrderWins(t *testing.T) {
	res := testReservation(model.PaymentPaid)
	first := practiceMatch(func(m *model.Match) { m.ID = 61 })
	second := practiceMatch(func(m *model.Match) { m.ID = 62; m.Status = model.MatchInProgress })
	// The data model does not forbid two matches on one reservation;
	// the earliest stored one decides the slot.
	info := Resolve(testNow, testDay, 18, testPitch(model.SportFut7), Actor{},
		[]model.Reservation{res}, []model.Match{first, second}, nil)
	if info.Match == nil || info.Match.ID != 61 {
		t.Fatalf("expected first stored match to win, got %+v", info.Match)
	}
}
