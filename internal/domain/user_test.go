package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// fixToday pins the domain clock to a fixed day and restores it on cleanup.
func fixToday(t *testing.T, d Date) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time {
		return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = prev })
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name    string
		totalXP int
		want    int
	}{
		{"negative clamps to 1", -10, 1},
		{"zero", 0, 1},
		{"just below level 2", 49, 1},
		{"level 2 threshold", 50, 2},
		{"just below level 3", 199, 2},
		{"level 3 threshold", 200, 3},
		{"mid level 3", 350, 3},
		{"level 4 threshold", 450, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForXP(tt.totalXP); got != tt.want {
				t.Errorf("LevelForXP(%d) = %d, want %d", tt.totalXP, got, tt.want)
			}
		})
	}
}

func TestLevelForXP_NonDecreasing(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 5000; xp++ {
		level := LevelForXP(xp)
		if level < 1 {
			t.Fatalf("LevelForXP(%d) = %d, want >= 1", xp, level)
		}
		if level < prev {
			t.Fatalf("LevelForXP decreased at xp=%d: %d -> %d", xp, prev, level)
		}
		prev = level
	}
}

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int
	}{
		{"level 0", 0, 0},
		{"level 1", 1, 0},
		{"level 2", 2, 50},
		{"level 3", 3, 200},
		{"level 4", 4, 450},
		{"level 10", 10, 4050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XPRequiredForLevel(tt.level); got != tt.want {
				t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

// The threshold for a level must land exactly on the level it unlocks,
// and never exceed the XP that reaches it.
func TestLevelCurve_Inverse(t *testing.T) {
	for level := 1; level <= 50; level++ {
		threshold := XPRequiredForLevel(level)
		if got := LevelForXP(threshold); got != level {
			t.Errorf("LevelForXP(XPRequiredForLevel(%d)) = %d, want %d", level, got, level)
		}
	}
	for xp := 0; xp <= 5000; xp++ {
		if req := XPRequiredForLevel(LevelForXP(xp)); req > xp {
			t.Errorf("XPRequiredForLevel(LevelForXP(%d)) = %d, want <= %d", xp, req, xp)
		}
	}
}

func TestUser_AddXP(t *testing.T) {
	tests := []struct {
		name      string
		amount    int
		wantXP    int
		wantLevel int
	}{
		{"100 xp reaches level 2", 100, 100, 2},
		{"350 xp reaches level 3", 350, 350, 3},
		{"49 xp stays level 1", 49, 49, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUser()
			u.AddXP(tt.amount)

			if u.TotalXP != tt.wantXP {
				t.Errorf("TotalXP = %d, want %d", u.TotalXP, tt.wantXP)
			}
			if u.CurrentLevel != tt.wantLevel {
				t.Errorf("CurrentLevel = %d, want %d", u.CurrentLevel, tt.wantLevel)
			}
			if u.LastActivityDate == nil || !u.LastActivityDate.Equal(Today()) {
				t.Errorf("LastActivityDate = %v, want today", u.LastActivityDate)
			}
		})
	}
}

func TestUser_AddXP_ResyncsTrustedLevel(t *testing.T) {
	// A restored user with an explicit (stale) level resynchronizes on the
	// next XP-earning action.
	u := NewUserFromState(UserState{TotalXP: 300, CurrentLevel: 7})
	if u.CurrentLevel != 7 {
		t.Fatalf("CurrentLevel = %d, want trusted 7", u.CurrentLevel)
	}

	u.AddXP(10)
	if u.CurrentLevel != LevelForXP(310) {
		t.Errorf("CurrentLevel = %d, want %d after resync", u.CurrentLevel, LevelForXP(310))
	}
}

func TestUser_AddXP_NegativeAccepted(t *testing.T) {
	u := NewUser()
	u.AddXP(100)
	u.AddXP(-200)

	if u.TotalXP != -100 {
		t.Errorf("TotalXP = %d, want -100", u.TotalXP)
	}
	if u.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, want 1 (negative totals clamp)", u.CurrentLevel)
	}
}

func TestNewUserFromState_LevelDerivation(t *testing.T) {
	tests := []struct {
		name  string
		state UserState
		want  int
	}{
		{"fresh default", UserState{}, 1},
		{"default level with xp self-corrects", UserState{TotalXP: 350, CurrentLevel: 1}, 3},
		{"unset level with xp self-corrects", UserState{TotalXP: 100}, 2},
		{"explicit level trusted", UserState{TotalXP: 350, CurrentLevel: 9}, 9},
		{"explicit level trusted even when low", UserState{TotalXP: 5000, CurrentLevel: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUserFromState(tt.state).CurrentLevel; got != tt.want {
				t.Errorf("CurrentLevel = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUser_XPForNextLevel(t *testing.T) {
	u := NewUser()
	u.AddXP(100) // level 2; level 3 begins at 200

	if got := u.XPForNextLevel(); got != 100 {
		t.Errorf("XPForNextLevel() = %d, want 100", got)
	}

	// A stale trusted level can make the result non-positive; the value is
	// reported as-is.
	stale := NewUserFromState(UserState{TotalXP: 500, CurrentLevel: 2})
	if got := stale.XPForNextLevel(); got != -300 {
		t.Errorf("XPForNextLevel() = %d, want -300", got)
	}
}

func TestUser_UpdateStreak(t *testing.T) {
	today := NewDate(2026, time.March, 10)
	fixToday(t, today)

	t.Run("first activity starts at 1", func(t *testing.T) {
		u := NewUser()
		u.UpdateStreak()

		if u.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", u.CurrentStreak)
		}
		if u.LastActivityDate == nil || !u.LastActivityDate.Equal(today) {
			t.Errorf("LastActivityDate = %v, want %v", u.LastActivityDate, today)
		}
		if u.LongestStreak != 1 {
			t.Errorf("LongestStreak = %d, want 1", u.LongestStreak)
		}
	})

	t.Run("same day repeat is a no-op", func(t *testing.T) {
		u := NewUser()
		u.UpdateStreak()
		u.UpdateStreak()

		if u.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", u.CurrentStreak)
		}
	})

	t.Run("same day after reset state restarts at 1", func(t *testing.T) {
		last := today
		u := NewUserFromState(UserState{LastActivityDate: &last})
		u.UpdateStreak()

		if u.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", u.CurrentStreak)
		}
	})

	t.Run("consecutive day increments", func(t *testing.T) {
		yesterday := today.AddDays(-1)
		u := NewUserFromState(UserState{CurrentStreak: 1, LongestStreak: 1, LastActivityDate: &yesterday})
		u.UpdateStreak()

		if u.CurrentStreak != 2 {
			t.Errorf("CurrentStreak = %d, want 2", u.CurrentStreak)
		}
		if !u.LastActivityDate.Equal(today) {
			t.Errorf("LastActivityDate = %v, want %v", u.LastActivityDate, today)
		}
		if u.LongestStreak != 2 {
			t.Errorf("LongestStreak = %d, want 2", u.LongestStreak)
		}
	})

	t.Run("gap resets but preserves longest", func(t *testing.T) {
		threeDaysAgo := today.AddDays(-3)
		u := NewUserFromState(UserState{CurrentStreak: 5, LongestStreak: 5, LastActivityDate: &threeDaysAgo})
		u.UpdateStreak()

		if u.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", u.CurrentStreak)
		}
		if u.LongestStreak != 5 {
			t.Errorf("LongestStreak = %d, want 5", u.LongestStreak)
		}
	})

	t.Run("future last activity resets to 1", func(t *testing.T) {
		tomorrow := today.AddDays(1)
		u := NewUserFromState(UserState{CurrentStreak: 4, LongestStreak: 4, LastActivityDate: &tomorrow})
		u.UpdateStreak()

		if u.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", u.CurrentStreak)
		}
	})
}

func TestUser_JSONRoundTrip(t *testing.T) {
	last := NewDate(2026, time.February, 27)
	u := &User{
		TotalXP:          150,
		CurrentLevel:     2,
		CurrentStreak:    3,
		LongestStreak:    8,
		LastActivityDate: &last,
	}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var restored User
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if restored.TotalXP != u.TotalXP || restored.CurrentLevel != u.CurrentLevel ||
		restored.CurrentStreak != u.CurrentStreak || restored.LongestStreak != u.LongestStreak {
		t.Errorf("round trip = %+v, want %+v", restored, u)
	}
	if restored.LastActivityDate == nil || !restored.LastActivityDate.Equal(last) {
		t.Errorf("LastActivityDate = %v, want %v", restored.LastActivityDate, last)
	}
}

func TestUser_UnmarshalTrustsStoredLevel(t *testing.T) {
	// The restore path must not re-derive an explicit level, even one the
	// curve disagrees with.
	var u User
	if err := json.Unmarshal([]byte(`{"total_xp": 5000, "current_level": 2, "current_streak": 0, "longest_streak": 0, "last_activity_date": null}`), &u); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if u.CurrentLevel != 2 {
		t.Errorf("CurrentLevel = %d, want trusted 2", u.CurrentLevel)
	}
}

func TestUser_UnmarshalInvalidDate(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"total_xp": 0, "last_activity_date": "not-a-date"}`), &u)

	var dateErr *InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("Unmarshal() error = %v, want *InvalidDateError", err)
	}
	if dateErr.Field != "last_activity_date" {
		t.Errorf("Field = %q, want %q", dateErr.Field, "last_activity_date")
	}
}
