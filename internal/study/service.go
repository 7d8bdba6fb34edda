// Package study is the single entry point presentation code uses to read and
// change learner state: accounts and the signed-in session, review
// scheduling, XP and badges, exam history, custom content and transfer codes.
package study

import (
	"math/rand"
	"sync"
	"time"

	"github.com/example/sakura/internal/catalog"
	"github.com/example/sakura/internal/events"
	"github.com/example/sakura/internal/exam"
	"github.com/example/sakura/internal/progression"
	"github.com/example/sakura/internal/spaced_repetition"
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/pkg/models"
	"github.com/sirupsen/logrus"
)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Catalog   *catalog.Catalog
	Engine    *progression.Engine
	Scheduler *spaced_repetition.SM2
	Events    *events.Broadcaster
	Logger    *logrus.Entry
	Now       func() time.Time
	Rand      *rand.Rand
	SeedDemo  bool
}

// Service owns all durable learner state. Calls are serialized; events raised
// by a call are delivered after its state is persisted and before it returns.
type Service struct {
	mu      sync.Mutex
	pending []func()
	async   sync.WaitGroup

	store     *storage.Store
	catalog   *catalog.Catalog
	engine    *progression.Engine
	scheduler *spaced_repetition.SM2
	events    *events.Broadcaster
	exams     *exam.Builder
	logger    *logrus.Entry
	now       func() time.Time
}

// New creates a service over store.
func New(store *storage.Store, opts Options) (*Service, error) {
	if opts.Catalog == nil {
		c, err := catalog.Load(catalog.DefaultPlaceholders)
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	if opts.Engine == nil {
		opts.Engine = progression.NewEngine()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = spaced_repetition.NewSM2()
	}
	if opts.Events == nil {
		opts.Events = events.NewBroadcaster()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		store:     store,
		catalog:   opts.Catalog,
		engine:    opts.Engine,
		scheduler: opts.Scheduler,
		events:    opts.Events,
		exams:     exam.NewBuilder(opts.Rand),
		logger:    opts.Logger.WithField("component", "study"),
		now:       opts.Now,
	}
	if opts.SeedDemo {
		s.seedDemo()
	}
	return s, nil
}

// Events returns the broadcaster that carries badge unlocks and profile changes.
func (s *Service) Events() *events.Broadcaster {
	return s.events
}

// Wait blocks until background work started by Login has finished.
func (s *Service) Wait() {
	s.async.Wait()
}

// lock acquires the service and returns the matching release, which also
// delivers the events queued while the lock was held.
func (s *Service) lock() (unlock func()) {
	s.mu.Lock()
	return func() {
		pending := s.pending
		s.pending = nil
		s.mu.Unlock()
		for _, fn := range pending {
			fn()
		}
	}
}

func (s *Service) queue(fn func()) {
	s.pending = append(s.pending, fn)
}

// Demo account shipped with every store.
const (
	DemoUsername = "sakura_fan"
	DemoPassword = "password"
	demoUserID   = "demo-uuid-123"
)

func (s *Service) seedDemo() {
	defer s.lock()()

	accounts := s.accounts()
	for _, a := range accounts {
		if a.Username == DemoUsername {
			return
		}
	}

	accounts = append(accounts, models.UserAccount{
		Profile: models.Profile{
			ID:               demoUserID,
			Username:         DemoUsername,
			Name:             "Sato Kenji",
			Level:            models.LevelN5,
			ExamDate:         "2025-07-01",
			DailyGoalMinutes: 30,
			Streak:           5,
			LastStudyDate:    progression.Today(s.now()),
			XP:               850,
			Badges:           []string{progression.StreakBadgeID(3), progression.BadgeWelcome},
			IsOnboarded:      true,
			Avatar:           "https://api.dicebear.com/7.x/avataaars/svg?seed=Kenji",
		},
		Password: DemoPassword,
	})
	s.store.Write(storage.KeyUsers, accounts)
	s.logger.Info("Demo user initialized")
}

// Storage accessors. Callers hold the lock.

func (s *Service) accounts() []models.UserAccount {
	return storage.Read(s.store, storage.KeyUsers, []models.UserAccount{})
}

func (s *Service) reviews() map[string]models.ReviewRecord {
	return storage.Read(s.store, storage.KeyReviews, map[string]models.ReviewRecord{})
}

func (s *Service) results() []models.TestResult {
	return storage.Read(s.store, storage.KeyResults, []models.TestResult{})
}

func (s *Service) customItems() []models.StudyItem {
	return storage.Read(s.store, storage.KeyCustomItems, []models.StudyItem{})
}

func (s *Service) currentID() string {
	return storage.Read(s.store, storage.KeyCurrentUserID, "")
}
