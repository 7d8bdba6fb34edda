package study

import (
	"strings"

	"github.com/example/sakura/internal/exam"
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/internal/transfer"
	"github.com/example/sakura/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExportUser encodes an account with its review records, exam results and
// all custom items as a transfer code.
func (s *Service) ExportUser(userID string) (string, error) {
	defer s.lock()()

	var account *models.UserAccount
	accounts := s.accounts()
	for i := range accounts {
		if accounts[i].ID == userID {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return "", errors.Wrapf(ErrNotFound, "user %q", userID)
	}

	prefix := userID + ":"
	reviews := make(map[string]models.ReviewRecord)
	for key, rec := range s.reviews() {
		if strings.HasPrefix(key, prefix) {
			reviews[key] = rec
		}
	}

	code, err := transfer.Encode(transfer.Payload{
		Version:     transfer.FormatVersion,
		User:        account,
		Reviews:     reviews,
		Results:     exam.ForUser(s.results(), userID),
		CustomItems: s.customItems(),
		Timestamp:   s.now().UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	s.logger.WithField("user_id", userID).Info("Transfer code generated")
	return code, nil
}

// ImportPayload restores a transfer code and signs its user in. Nothing is
// stored when the code cannot be decoded.
func (s *Service) ImportPayload(code string) (models.Profile, error) {
	p, err := transfer.Decode(code)
	if err != nil {
		s.logger.WithError(err).Warn("Rejected transfer code")
		return models.Profile{}, err
	}

	defer s.lock()()

	accounts := s.accounts()
	replaced := false
	for i, a := range accounts {
		if a.ID == p.User.ID {
			accounts[i] = *p.User
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, *p.User)
	}
	s.store.Write(storage.KeyUsers, accounts)

	records := s.reviews()
	for key, rec := range p.Reviews {
		records[key] = rec
	}
	s.store.Write(storage.KeyReviews, records)

	results, addedResults := exam.AppendNew(s.results(), p.Results)
	s.store.Write(storage.KeyResults, results)

	custom := s.customItems()
	known := make(map[string]bool, len(custom))
	for _, item := range custom {
		known[item.ID] = true
	}
	addedItems := 0
	for _, item := range p.CustomItems {
		if known[item.ID] {
			continue
		}
		known[item.ID] = true
		custom = append(custom, item)
		addedItems++
	}
	s.store.Write(storage.KeyCustomItems, custom)

	s.store.Write(storage.KeyCurrentUserID, p.User.ID)

	s.logger.WithFields(logrus.Fields{
		"user_id":      p.User.ID,
		"reviews":      len(p.Reviews),
		"results":      addedResults,
		"custom_items": addedItems,
	}).Info("Transfer code imported")
	return p.User.Sanitize(), nil
}
