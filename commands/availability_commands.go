package commands

import (
	"context"
	"sort"

	"ngi/models"

	"gorm.io/gorm"
)

// Command is one write against the store, run in its own transaction
type Command interface {
	Execute(ctx context.Context) error
}

// DateSet picks the booked or the blocked table
type DateSet int

const (
	Booked DateSet = iota
	Blocked
)

func (s DateSet) model() interface{} {
	if s == Blocked {
		return &models.BlockedDate{}
	}
	return &models.BookedDate{}
}

func (s DateSet) rows(dates []string) interface{} {
	if s == Blocked {
		rows := make([]models.BlockedDate, 0, len(dates))
		for _, d := range dates {
			rows = append(rows, models.BlockedDate{Date: d})
		}
		return &rows
	}
	rows := make([]models.BookedDate, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.BookedDate{Date: d})
	}
	return &rows
}

// AddDatesCommand merges dates into a set. Added holds only the new ones.
type AddDatesCommand struct {
	db        *gorm.DB
	set       DateSet
	dates     []string
	actor     string
	bookingID *uint

	Added []string
}

func NewAddDatesCommand(db *gorm.DB, set DateSet, dates []string, actor string) *AddDatesCommand {
	return &AddDatesCommand{db: db, set: set, dates: dates, actor: actor}
}

func (c *AddDatesCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		added, err := addDates(tx, c.set, c.dates)
		if err != nil {
			return err
		}
		c.Added = added

		action := models.ActionBookedAdded
		if c.set == Blocked {
			action = models.ActionBlockedAdded
		}
		return writeLog(tx, action, added, c.actor, c.bookingID)
	})
}

// RemoveBlockedCommand drops blocked dates without any check
type RemoveBlockedCommand struct {
	db    *gorm.DB
	dates []string
	actor string

	Removed []string
}

func NewRemoveBlockedCommand(db *gorm.DB, dates []string, actor string) *RemoveBlockedCommand {
	return &RemoveBlockedCommand{db: db, dates: dates, actor: actor}
}

func (c *RemoveBlockedCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		present, err := presentDates(tx, Blocked, c.dates)
		if err != nil {
			return err
		}
		if err := deleteDates(tx, Blocked, present); err != nil {
			return err
		}
		c.Removed = present
		return writeLog(tx, models.ActionBlockedRemoved, present, c.actor, nil)
	})
}

// RemoveBookedCommand frees booked dates. Without force a date still inside
// another approved booking's stay is kept and reported in Retained.
type RemoveBookedCommand struct {
	db        *gorm.DB
	dates     []string
	force     bool
	excludeID uint
	actor     string

	Removed  []string
	Retained []string
}

func NewRemoveBookedCommand(db *gorm.DB, dates []string, force bool, actor string) *RemoveBookedCommand {
	return &RemoveBookedCommand{db: db, dates: dates, force: force, actor: actor}
}

// Excluding ignores one booking when computing claims, used when that
// booking is the one being deleted.
func (c *RemoveBookedCommand) Excluding(bookingID uint) *RemoveBookedCommand {
	c.excludeID = bookingID
	return c
}

func (c *RemoveBookedCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, retained, err := removeBooked(tx, c.dates, c.force, c.excludeID)
		if err != nil {
			return err
		}
		c.Removed, c.Retained = removed, retained

		action := models.ActionBookedRemoved
		if c.force {
			action = models.ActionBookedForced
		}
		return writeLog(tx, action, removed, c.actor, nil)
	})
}

// ClearBookedCommand releases every booked date
type ClearBookedCommand struct {
	db    *gorm.DB
	actor string

	Removed []string
}

func NewClearBookedCommand(db *gorm.DB, actor string) *ClearBookedCommand {
	return &ClearBookedCommand{db: db, actor: actor}
}

func (c *ClearBookedCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var all []string
		if err := tx.Model(&models.BookedDate{}).Order("day").Pluck("day", &all).Error; err != nil {
			return err
		}
		if len(all) == 0 {
			return nil
		}
		if err := tx.Where("1 = 1").Delete(&models.BookedDate{}).Error; err != nil {
			return err
		}
		c.Removed = all
		return writeLog(tx, models.ActionBookedCleared, all, c.actor, nil)
	})
}

func presentDates(tx *gorm.DB, set DateSet, dates []string) ([]string, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	var found []string
	if err := tx.Model(set.model()).Where("day IN ?", dates).Order("day").Pluck("day", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func addDates(tx *gorm.DB, set DateSet, dates []string) ([]string, error) {
	present, err := presentDates(tx, set, dates)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(present)+len(dates))
	for _, d := range present {
		skip[d] = true
	}

	var fresh []string
	for _, d := range dates {
		if skip[d] {
			continue
		}
		skip[d] = true
		fresh = append(fresh, d)
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	sort.Strings(fresh)
	if err := tx.Create(set.rows(fresh)).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func deleteDates(tx *gorm.DB, set DateSet, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	return tx.Where("day IN ?", dates).Delete(set.model()).Error
}

// claimedDates returns which of dates fall inside an approved booking other
// than excludeID
func claimedDates(tx *gorm.DB, dates []string, excludeID uint) (map[string]bool, error) {
	claimed := make(map[string]bool)
	if len(dates) == 0 {
		return claimed, nil
	}

	lo, hi := dates[0], dates[0]
	for _, d := range dates {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}

	var others []models.Booking
	q := tx.Where("status = ? AND check_in <= ? AND check_out >= ?", models.BookingStatusApproved, hi, lo)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&others).Error; err != nil {
		return nil, err
	}

	for _, d := range dates {
		for i := range others {
			if others[i].Covers(d) {
				claimed[d] = true
				break
			}
		}
	}
	return claimed, nil
}

func removeBooked(tx *gorm.DB, dates []string, force bool, excludeID uint) (removed, retained []string, err error) {
	present, err := presentDates(tx, Booked, dates)
	if err != nil {
		return nil, nil, err
	}
	if len(present) == 0 {
		return nil, nil, nil
	}

	if force {
		return present, nil, deleteDates(tx, Booked, present)
	}

	claimed, err := claimedDates(tx, present, excludeID)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range present {
		if claimed[d] {
			retained = append(retained, d)
		} else {
			removed = append(removed, d)
		}
	}
	return removed, retained, deleteDates(tx, Booked, removed)
}

func writeLog(tx *gorm.DB, action string, dates []string, actor string, bookingID *uint) error {
	if len(dates) == 0 {
		return nil
	}
	return tx.Create(&models.AvailabilityLog{
		Action:    action,
		Dates:     models.DateList(dates),
		BookingID: bookingID,
		Actor:     actor,
	}).Error
}
