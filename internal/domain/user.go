package domain

import (
	"encoding/json"
	"math"
)

// xpPerLevelUnit is the constant in the level curve:
// level = floor(sqrt(total_xp / 50)) + 1.
const xpPerLevelUnit = 50

// LevelForXP returns the level reached at the given XP total. Negative
// totals clamp to level 1. The curve is a non-decreasing step function;
// level n begins at 50*(n-1)^2 XP.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return int(math.Sqrt(float64(totalXP)/xpPerLevelUnit)) + 1
}

// XPRequiredForLevel returns the total XP threshold at which the given
// level begins. Levels at or below 1 begin at zero.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * xpPerLevelUnit
}

// User holds the installation's cumulative progression: XP, level, and
// the daily streak counters. Exactly one user exists per installation.
type User struct {
	TotalXP          int
	CurrentLevel     int
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *Date
}

// NewUser creates a fresh user with no progress.
func NewUser() *User {
	return &User{CurrentLevel: 1}
}

// UserState is a progression snapshot used to construct a User with
// explicit values.
type UserState struct {
	TotalXP          int
	CurrentLevel     int
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *Date
}

// NewUserFromState builds a user from a snapshot. A level left at the
// default 1 (or unset) with a positive XP total is recomputed from the
// curve; any other explicit level is trusted verbatim. Restoring stored
// data must not silently overwrite an explicit level, while a snapshot
// built with XP and no level self-corrects.
func NewUserFromState(state UserState) *User {
	level := state.CurrentLevel
	if level == 0 {
		level = 1
	}
	if level == 1 && state.TotalXP > 0 {
		level = LevelForXP(state.TotalXP)
	}

	return &User{
		TotalXP:          state.TotalXP,
		CurrentLevel:     level,
		CurrentStreak:    state.CurrentStreak,
		LongestStreak:    state.LongestStreak,
		LastActivityDate: state.LastActivityDate,
	}
}

// AddXP adds the amount to the XP total, stamps today as the last
// activity date, and resynchronizes the level to the curve. Negative
// amounts are accepted and reduce the total.
func (u *User) AddXP(amount int) {
	u.TotalXP += amount
	today := Today()
	u.LastActivityDate = &today
	u.CurrentLevel = LevelForXP(u.TotalXP)
}

// XPForNextLevel returns the XP still needed to reach the next level.
// With a stale trusted level the result can be zero or negative; it is
// intentionally not clamped.
func (u *User) XPForNextLevel() int {
	return XPRequiredForLevel(u.CurrentLevel+1) - u.TotalXP
}

// UpdateStreak advances the daily streak machine relative to today:
// first-ever activity starts a streak of 1, same-day repeats are no-ops
// (unless the streak was reset to 0), activity after exactly one day
// increments, and any larger gap resets to 1. The longest streak is
// folded in after every transition. Safe to call multiple times per day.
func (u *User) UpdateStreak() {
	today := Today()

	switch {
	case u.LastActivityDate == nil:
		u.CurrentStreak = 1
		u.LastActivityDate = &today
	case u.LastActivityDate.Equal(today):
		if u.CurrentStreak == 0 {
			u.CurrentStreak = 1
		}
	case u.LastActivityDate.Equal(today.AddDays(-1)):
		u.CurrentStreak++
		u.LastActivityDate = &today
	default:
		u.CurrentStreak = 1
		u.LastActivityDate = &today
	}

	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
}

// userRecord is the wire representation of a User.
type userRecord struct {
	TotalXP          int     `json:"total_xp"`
	CurrentLevel     *int    `json:"current_level"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	LastActivityDate *string `json:"last_activity_date"`
}

// MarshalJSON serializes the user to its stored record form.
func (u *User) MarshalJSON() ([]byte, error) {
	level := u.CurrentLevel
	rec := userRecord{
		TotalXP:       u.TotalXP,
		CurrentLevel:  &level,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
	}
	if u.LastActivityDate != nil {
		rec.LastActivityDate = stringPtr(u.LastActivityDate.String())
	}
	return json.Marshal(rec)
}

// UnmarshalJSON restores a user from its stored record form. A stored
// level is trusted verbatim without recomputation; only a record with no
// level at all re-derives it from the XP total.
func (u *User) UnmarshalJSON(data []byte) error {
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	var lastActivity *Date
	if rec.LastActivityDate != nil && *rec.LastActivityDate != "" {
		d, err := ParseDate(*rec.LastActivityDate)
		if err != nil {
			return &InvalidDateError{Field: "last_activity_date", Value: *rec.LastActivityDate}
		}
		lastActivity = &d
	}

	level := 1
	if rec.CurrentLevel != nil {
		level = *rec.CurrentLevel
	} else if rec.TotalXP > 0 {
		level = LevelForXP(rec.TotalXP)
	}

	*u = User{
		TotalXP:          rec.TotalXP,
		CurrentLevel:     level,
		CurrentStreak:    rec.CurrentStreak,
		LongestStreak:    rec.LongestStreak,
		LastActivityDate: lastActivity,
	}
	return nil
}
