package study

import (
	"net/url"
	"strings"

	"github.com/example/sakura/internal/progression"
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Register creates an account. It does not sign the new user in.
func (s *Service) Register(name, username, password string) (models.Profile, error) {
	defer s.lock()()

	accounts := s.accounts()
	if _, ok := findByUsername(accounts, username); ok {
		return models.Profile{}, errors.Wrapf(ErrDuplicateUsername, "register %q", username)
	}

	account := models.UserAccount{
		Profile: models.Profile{
			ID:               uuid.NewString(),
			Username:         username,
			Name:             name,
			Level:            models.LevelN5,
			DailyGoalMinutes: 15,
			Streak:           1,
			LastStudyDate:    progression.Today(s.now()),
			Badges:           []string{},
			Avatar:           "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name),
		},
		Password: password,
	}
	s.store.Write(storage.KeyUsers, append(accounts, account))

	s.logger.WithField("username", username).Info("New user registered")
	return account.Sanitize(), nil
}

// Login signs a user in. The daily streak check runs in the background, so
// the returned profile may not reflect it yet.
func (s *Service) Login(username, password string) (models.Profile, error) {
	defer s.lock()()

	accounts := s.accounts()
	i, ok := findByUsername(accounts, username)
	if !ok {
		s.logger.WithField("username", username).Warn("Login failed: user not found")
		return models.Profile{}, errors.Wrapf(ErrNotFound, "user %q", username)
	}
	account := accounts[i]
	if account.Password != "" && account.Password != password {
		s.logger.WithField("username", username).Warn("Login failed: incorrect password")
		return models.Profile{}, errors.Wrapf(ErrInvalidCredential, "user %q", username)
	}

	s.store.Write(storage.KeyCurrentUserID, account.ID)
	s.logger.WithField("user_id", account.ID).Info("User logged in")

	s.async.Add(1)
	go func() {
		defer s.async.Done()
		s.CheckDailyStreak()
	}()

	return account.Sanitize(), nil
}

// Logout clears the session. Calling it while signed out does nothing.
func (s *Service) Logout() {
	defer s.lock()()
	s.store.Remove(storage.KeyCurrentUserID)
}

// GetCurrent returns the signed-in user's profile.
func (s *Service) GetCurrent() (models.Profile, bool) {
	defer s.lock()()

	_, account, ok := s.current()
	if !ok {
		return models.Profile{}, false
	}
	return account.Sanitize(), true
}

// Update merges upd into the signed-in user's account. It does nothing while
// signed out.
func (s *Service) Update(upd models.UserUpdate) {
	defer s.lock()()
	s.update(upd)
}

// CompleteOnboarding stores the first-run choices, marks the user onboarded
// and runs the daily streak check.
func (s *Service) CompleteOnboarding(upd models.UserUpdate) {
	defer s.lock()()

	upd.IsOnboarded = models.Ptr(true)
	s.update(upd)
	s.checkDailyStreak()
}

// ClaimWelcomeBadge awards the first-visit badge once. It reports whether the
// badge was newly awarded.
func (s *Service) ClaimWelcomeBadge() bool {
	defer s.lock()()

	_, account, ok := s.current()
	if !ok || account.HasBadge(progression.BadgeWelcome) {
		return false
	}
	s.update(models.UserUpdate{Badges: append(append([]string{}, account.Badges...), progression.BadgeWelcome)})
	return true
}

// ListAccounts returns every registered account without credentials.
func (s *Service) ListAccounts() []models.Profile {
	defer s.lock()()

	accounts := s.accounts()
	profiles := make([]models.Profile, 0, len(accounts))
	for _, a := range accounts {
		profiles = append(profiles, a.Sanitize())
	}
	return profiles
}

// current resolves the session pointer. A pointer to a deleted account is cleared.
func (s *Service) current() (accounts []models.UserAccount, account models.UserAccount, ok bool) {
	id := s.currentID()
	if id == "" {
		return nil, account, false
	}

	accounts = s.accounts()
	for _, a := range accounts {
		if a.ID == id {
			return accounts, a, true
		}
	}

	s.logger.WithField("user_id", id).Warn("Session points to a missing account, clearing it")
	s.store.Remove(storage.KeyCurrentUserID)
	return nil, account, false
}

// update applies upd to the signed-in account, persists it and queues the
// badge unlock events followed by one profile change event.
func (s *Service) update(upd models.UserUpdate) {
	id := s.currentID()
	if id == "" {
		return
	}
	accounts := s.accounts()
	idx := -1
	for i, a := range accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	account := accounts[idx]
	held := make(map[string]bool, len(account.Badges))
	for _, b := range account.Badges {
		held[b] = true
	}

	upd.Apply(&account.Profile)
	account.Badges = dedupe(account.Badges)
	accounts[idx] = account
	s.store.Write(storage.KeyUsers, accounts)

	if upd.Badges != nil {
		for _, b := range account.Badges {
			if held[b] {
				continue
			}
			badge, ok := s.engine.Badges.Lookup(b)
			if !ok {
				continue
			}
			s.logger.WithFields(logrus.Fields{"user_id": account.ID, "badge": b}).Info("Badge unlocked")
			s.queue(func() { s.events.PublishBadge(badge) })
		}
	}

	profile := account.Sanitize()
	s.queue(func() { s.events.PublishProfile(profile) })
}

func findByUsername(accounts []models.UserAccount, username string) (int, bool) {
	for i, a := range accounts {
		if strings.EqualFold(a.Username, username) {
			return i, true
		}
	}
	return -1, false
}

func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
