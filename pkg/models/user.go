package models

// Profile is the sanitized view of an account that is safe to hand to presentation code
type Profile struct {
	ID               string   `json:"id"`
	Username         string   `json:"username"` // Login handle, unique ignoring case
	Name             string   `json:"name"`
	Level            Level    `json:"level"`
	ExamDate         string   `json:"examDate"`
	DailyGoalMinutes int      `json:"dailyGoalMinutes"`
	Streak           int      `json:"streak"`
	LastStudyDate    string   `json:"lastStudyDate,omitempty"` // YYYY-MM-DD, empty when never tracked
	XP               int      `json:"xp"`
	Badges           []string `json:"badges"`
	IsOnboarded      bool     `json:"isOnboarded"`
	Avatar           string   `json:"avatar,omitempty"`
}

// UserAccount is the stored form of a registered user.
// Password is kept in plaintext.
type UserAccount struct {
	Profile
	Password string `json:"password,omitempty"`
}

// Sanitize returns a copy of the account without its credential.
func (u UserAccount) Sanitize() Profile {
	p := u.Profile
	p.Badges = append([]string{}, u.Badges...)
	return p
}

// HasBadge reports whether the profile already holds the badge.
func (p Profile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// UserUpdate is a partial set of profile fields. Nil fields are left untouched.
type UserUpdate struct {
	Name             *string
	Level            *Level
	ExamDate         *string
	DailyGoalMinutes *int
	Streak           *int
	LastStudyDate    *string
	XP               *int
	Badges           []string // nil leaves badges unchanged
	IsOnboarded      *bool
	Avatar           *string
}

// IsEmpty reports whether the update sets no field.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Level == nil && u.ExamDate == nil && u.DailyGoalMinutes == nil &&
		u.Streak == nil && u.LastStudyDate == nil && u.XP == nil && u.Badges == nil &&
		u.IsOnboarded == nil && u.Avatar == nil
}

// Apply merges the set fields into p, last write wins per field.
func (u UserUpdate) Apply(p *Profile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.ExamDate != nil {
		p.ExamDate = *u.ExamDate
	}
	if u.DailyGoalMinutes != nil {
		p.DailyGoalMinutes = *u.DailyGoalMinutes
	}
	if u.Streak != nil {
		p.Streak = *u.Streak
	}
	if u.LastStudyDate != nil {
		p.LastStudyDate = *u.LastStudyDate
	}
	if u.XP != nil {
		p.XP = *u.XP
	}
	if u.Badges != nil {
		p.Badges = append([]string{}, u.Badges...)
	}
	if u.IsOnboarded != nil {
		p.IsOnboarded = *u.IsOnboarded
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
}

// Ptr returns a pointer to v. It keeps UserUpdate literals short.
func Ptr[T any](v T) *T {
	return &v
}
