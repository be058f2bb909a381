package services

import (
	"context"
	"time"

	"ngi/commands"
	"ngi/dto"
	"ngi/errors"
	"ngi/models"
	"ngi/services/logger"
	"ngi/services/notification"
	"ngi/utils"
	"ngi/validator"

	"gorm.io/gorm"
)

const defaultHistoryLimit = 100

type AvailabilityStoreOptions struct {
	DB       *gorm.DB
	Bus      notification.Bus
	Logger   logger.Logger
	Location *time.Location
	Now      func() time.Time
}

// AvailabilityStore owns the booked and blocked date sets. Every write runs
// as a command in its own transaction, and only effective changes are
// announced on the bus.
type AvailabilityStore struct {
	db     *gorm.DB
	bus    notification.Bus
	logger logger.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewAvailabilityStore(opts AvailabilityStoreOptions) *AvailabilityStore {
	s := &AvailabilityStore{
		db:     opts.DB,
		bus:    opts.Bus,
		logger: opts.Logger,
		loc:    opts.Location,
		now:    opts.Now,
	}
	if s.bus == nil {
		s.bus = notification.NewMemoryBus()
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *AvailabilityStore) Location() *time.Location { return s.loc }

func (s *AvailabilityStore) Now() time.Time { return s.now().In(s.loc) }

// Today is the current DateKey in the store's zone
func (s *AvailabilityStore) Today() string {
	return utils.TodayKey(s.now(), s.loc)
}

// Range validates an inclusive range and expands it. An empty end means
// the single day start.
func (s *AvailabilityStore) Range(start, end string) ([]string, error) {
	if end == "" {
		end = start
	}
	if err := validator.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return utils.EnumerateRange(start, end, s.loc), nil
}

// Snapshot reads both sets straight from the database
func (s *AvailabilityStore) Snapshot(ctx context.Context) (dto.AvailabilitySnapshot, error) {
	snap := dto.AvailabilitySnapshot{Booked: []string{}, Blocked: []string{}}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.BookedDate{}).Order("day").Pluck("day", &snap.Booked).Error; err != nil {
		return snap, errors.NewAppError(errors.ErrCodeDBError, "Failed to read booked dates", err)
	}
	if err := db.Model(&models.BlockedDate{}).Order("day").Pluck("day", &snap.Blocked).Error; err != nil {
		return snap, errors.NewAppError(errors.ErrCodeDBError, "Failed to read blocked dates", err)
	}
	snap.Booked, snap.Blocked = nonNil(snap.Booked), nonNil(snap.Blocked)
	return snap, nil
}

// IsAvailable is false for a booked, blocked or past day
func (s *AvailabilityStore) IsAvailable(ctx context.Context, day string) (bool, error) {
	if err := validator.ValidateDateKey(day); err != nil {
		return false, err
	}
	states, err := s.states(ctx, []string{day})
	if err != nil {
		return false, err
	}
	return states[day] == models.DayAvailable, nil
}

// DayStatus describes one day with its price for tier
func (s *AvailabilityStore) DayStatus(ctx context.Context, day string, tier GuestTier) (dto.DayAvailability, error) {
	if err := validator.ValidateDateKey(day); err != nil {
		return dto.DayAvailability{}, err
	}
	states, err := s.states(ctx, []string{day})
	if err != nil {
		return dto.DayAvailability{}, err
	}

	now := s.now()
	out := dto.DayAvailability{DayStatus: s.dayStatus(day, states[day], tier, now)}
	for _, t := range Tiers() {
		out.Prices = append(out.Prices, dto.TierPrice{
			Tier:  int(t),
			Label: t.Label(),
			Price: ComputePrice(t, day, now, s.loc),
		})
	}
	return out, nil
}

// CalendarMonth renders every day of a month with exactly one state each
func (s *AvailabilityStore) CalendarMonth(ctx context.Context, year int, month time.Month, tier GuestTier) (dto.CalendarMonthResponse, error) {
	now := s.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	if !tier.Valid() {
		tier = TierBelow10
	}

	keys := utils.MonthKeys(year, month, s.loc)
	states, err := s.states(ctx, keys)
	if err != nil {
		return dto.CalendarMonthResponse{}, err
	}

	resp := dto.CalendarMonthResponse{
		Year:  year,
		Month: int(month),
		Tier:  int(tier),
		Days:  make([]dto.DayStatus, 0, len(keys)),
	}
	for _, k := range keys {
		resp.Days = append(resp.Days, s.dayStatus(k, states[k], tier, now))
	}
	return resp, nil
}

func (s *AvailabilityStore) dayStatus(day string, state models.DayState, tier GuestTier, now time.Time) dto.DayStatus {
	return dto.DayStatus{
		Date:      day,
		State:     state,
		Available: state == models.DayAvailable,
		Today:     day == utils.TodayKey(now, s.loc),
		Weekend:   IsWeekend(day, now, s.loc),
		Price:     ComputePrice(tier, day, now, s.loc),
	}
}

// states resolves the exclusive state of each day with one query per set
func (s *AvailabilityStore) states(ctx context.Context, days []string) (map[string]models.DayState, error) {
	db := s.db.WithContext(ctx)

	var booked, blocked []string
	if err := db.Model(&models.BookedDate{}).Where("day IN ?", days).Pluck("day", &booked).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read booked dates", err)
	}
	if err := db.Model(&models.BlockedDate{}).Where("day IN ?", days).Pluck("day", &blocked).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read blocked dates", err)
	}

	inBooked := toSet(booked)
	inBlocked := toSet(blocked)
	today := s.Today()

	out := make(map[string]models.DayState, len(days))
	for _, d := range days {
		out[d] = models.ResolveDayState(inBooked[d], inBlocked[d], d < today)
	}
	return out, nil
}

// AddBooked merges [start, end] into the booked set
func (s *AvailabilityStore) AddBooked(ctx context.Context, start, end, actor string) ([]string, error) {
	return s.add(ctx, commands.Booked, start, end, actor)
}

// AddBlocked merges [start, end] into the blocked set
func (s *AvailabilityStore) AddBlocked(ctx context.Context, start, end, actor string) ([]string, error) {
	return s.add(ctx, commands.Blocked, start, end, actor)
}

func (s *AvailabilityStore) add(ctx context.Context, set commands.DateSet, start, end, actor string) ([]string, error) {
	dates, err := s.Range(start, end)
	if err != nil {
		return nil, err
	}

	cmd := commands.NewAddDatesCommand(s.db, set, dates, actor)
	if err := cmd.Execute(ctx); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to add dates", err)
	}

	event := notification.BookedUpdated
	if set == commands.Blocked {
		event = notification.BlockedUpdated
	}
	s.publish(ctx, event, cmd.Added)
	return nonNil(cmd.Added), nil
}

// RemoveBlocked drops [start, end] from the blocked set
func (s *AvailabilityStore) RemoveBlocked(ctx context.Context, start, end, actor string) ([]string, error) {
	dates, err := s.Range(start, end)
	if err != nil {
		return nil, err
	}

	cmd := commands.NewRemoveBlockedCommand(s.db, dates, actor)
	if err := cmd.Execute(ctx); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to remove blocked dates", err)
	}

	s.publish(ctx, notification.BlockedRemoved, cmd.Removed)
	return nonNil(cmd.Removed), nil
}

// RemoveBooked frees [start, end]. Without force, days still inside another
// approved booking stay booked and come back in Retained.
func (s *AvailabilityStore) RemoveBooked(ctx context.Context, start, end string, force bool, actor string) (dto.RemovalResult, error) {
	dates, err := s.Range(start, end)
	if err != nil {
		return dto.RemovalResult{}, err
	}

	cmd := commands.NewRemoveBookedCommand(s.db, dates, force, actor)
	if err := cmd.Execute(ctx); err != nil {
		return dto.RemovalResult{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to remove booked dates", err)
	}

	s.publish(ctx, notification.BookedRemoved, cmd.Removed)
	return dto.RemovalResult{
		Removed:  nonNil(cmd.Removed),
		Retained: nonNil(cmd.Retained),
		Forced:   force,
	}, nil
}

// ClearBooked releases every booked day
func (s *AvailabilityStore) ClearBooked(ctx context.Context, actor string) ([]string, error) {
	cmd := commands.NewClearBookedCommand(s.db, actor)
	if err := cmd.Execute(ctx); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to clear booked dates", err)
	}

	s.publish(ctx, notification.BookedCleared, cmd.Removed)
	return nonNil(cmd.Removed), nil
}

// History lists the newest log entries first
func (s *AvailabilityStore) History(ctx context.Context, limit int) ([]models.AvailabilityLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var logs []models.AvailabilityLog
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read availability history", err)
	}
	return logs, nil
}

// publish announces dates on the bus. Nothing changed means nothing is sent.
func (s *AvailabilityStore) publish(ctx context.Context, t notification.EventType, dates []string) {
	if len(dates) == 0 {
		return
	}
	if err := s.bus.Publish(ctx, notification.DatesEvent(t, dates, s.now())); err != nil {
		s.logger.Error("publish %s: %v", t, err)
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
