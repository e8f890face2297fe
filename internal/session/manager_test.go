package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/repository"
	"github.com/ivanoskov/finbot/internal/service"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestManager(repo repository.Repository, ttl time.Duration) (*Manager, *clock) {
	log, _ := test.NewNullLogger()
	m := NewManager(repo, ttl, log)
	c := &clock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	m.now = c.now
	return m, c
}

func TestGet_CreatesIndependentSessions(t *testing.T) {
	m, _ := newTestManager(nil, time.Hour)

	a := m.Get(1)
	b := m.Get(2)
	if a == b || a.Profile == b.Profile {
		t.Fatal("chats must not share sessions or profiles")
	}
	if m.Get(1) != a {
		t.Error("expected the same session for the same chat")
	}
	if len(a.Messages) != 1 || a.Messages[0].Content != service.Greeting {
		t.Errorf("new session must start with the greeting, got %+v", a.Messages)
	}
	if a.Profile.Active() {
		t.Error("new profile must be idle")
	}
}

func TestReset_ArchivesAndStartsFresh(t *testing.T) {
	repo := repository.NewMemoryRepository()
	m, c := newTestManager(repo, time.Hour)
	ctx := context.Background()

	s := m.Get(7)
	s.Record(model.RoleUser, "Create a budget", c.t)
	s.Record(model.RoleAssistant, "What is your income?", c.t)
	s.Profile.State = model.StateIncomeForBudget

	fresh := m.Reset(ctx, 7)
	if fresh == s || fresh.Profile.Active() {
		t.Fatal("reset must return a fresh idle session")
	}

	chats, err := m.History(ctx, 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(chats) != 1 {
		t.Fatalf("expected one archived chat, got %d", len(chats))
	}
	if chats[0].Title != "Create a budget..." || len(chats[0].Messages) != 3 {
		t.Errorf("unexpected archive %+v", chats[0])
	}
}

func TestReset_SkipsGreetingOnlyChats(t *testing.T) {
	repo := repository.NewMemoryRepository()
	m, _ := newTestManager(repo, time.Hour)
	ctx := context.Background()

	m.Get(3)
	m.Reset(ctx, 3)

	chats, _ := m.History(ctx, 3, 0)
	if len(chats) != 0 {
		t.Errorf("greeting-only chat must not be archived, got %d", len(chats))
	}
}

func TestSweep_ArchivesIdleSessions(t *testing.T) {
	repo := repository.NewMemoryRepository()
	m, c := newTestManager(repo, 30*time.Minute)
	ctx := context.Background()

	idle := m.Get(1)
	idle.Record(model.RoleUser, "hello", c.t)

	c.t = c.t.Add(20 * time.Minute)
	active := m.Get(2)
	active.Record(model.RoleUser, "tax", c.t)

	c.t = c.t.Add(15 * time.Minute)
	if n := m.Sweep(ctx); n != 1 {
		t.Fatalf("expected one swept session, got %d", n)
	}
	if m.Len() != 1 || m.Get(2) != active {
		t.Error("active session must survive the sweep")
	}

	chats, _ := m.History(ctx, 1, 0)
	if len(chats) != 1 {
		t.Errorf("idle chat must be archived, got %d", len(chats))
	}
}

func TestSweep_SkipsBusySessions(t *testing.T) {
	m, c := newTestManager(nil, time.Minute)
	s := m.Get(1)
	s.Record(model.RoleUser, "budget", c.t)
	c.t = c.t.Add(time.Hour)

	s.Lock()
	n := m.Sweep(context.Background())
	s.Unlock()

	if n != 0 || m.Len() != 1 {
		t.Errorf("busy session must not be swept, swept %d", n)
	}
}

func TestSweep_DisabledWithoutTTL(t *testing.T) {
	m, c := newTestManager(nil, 0)
	m.Get(1)
	c.t = c.t.Add(24 * time.Hour)
	if n := m.Sweep(context.Background()); n != 0 {
		t.Errorf("expected no sweep, got %d", n)
	}
	if err := m.StartSweeper(context.Background(), "not a cron spec"); err != nil {
		t.Errorf("disabled sweeper must not parse the spec: %v", err)
	}
}

func TestStartSweeper_BadSpec(t *testing.T) {
	m, _ := newTestManager(nil, time.Minute)
	if err := m.StartSweeper(context.Background(), "every now and then"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

type failingRepo struct{ repository.MemoryRepository }

func (f *failingRepo) SaveChat(context.Context, *model.ChatArchive) error {
	return errors.New("disk full")
}

func TestStop_ArchivesOpenSessionsAndToleratesErrors(t *testing.T) {
	m, c := newTestManager(&failingRepo{}, time.Hour)
	if err := m.StartSweeper(context.Background(), "0 0 * * * *"); err != nil {
		t.Fatal(err)
	}
	s := m.Get(9)
	s.Record(model.RoleUser, "goal", c.t)

	m.Stop(context.Background())
	if m.Len() != 0 {
		t.Errorf("expected all sessions closed, got %d", m.Len())
	}
}

func TestChatTitle_Truncates(t *testing.T) {
	long := "Please help me build a budget for my family of four living in Pune"
	title := model.ChatTitle([]model.ChatMessage{
		{Role: model.RoleAssistant, Content: service.Greeting},
		{Role: model.RoleUser, Content: long},
	})
	if want := long[:50] + "..."; title != want {
		t.Errorf("expected %q, got %q", want, title)
	}
}

func TestAcquire_ReturnsRegisteredSession(t *testing.T) {
	m, c := newTestManager(nil, time.Minute)

	s := m.Acquire(1)
	if s.TryLock() {
		t.Fatal("acquired session must be locked")
	}
	s.Record(model.RoleUser, "budget", c.t)
	s.Unlock()

	if again := m.Acquire(1); again != s {
		t.Error("expected the same session for the same chat")
	} else {
		again.Unlock()
	}
}

func TestAcquire_SkipsSessionRemovedWhileWaiting(t *testing.T) {
	m, c := newTestManager(nil, time.Minute)
	stale := m.Get(1)
	stale.Record(model.RoleUser, "budget", c.t)

	// Сессия занята, пока ее убирают из менеджера
	stale.Lock()
	got := make(chan *Session, 1)
	go func() { got <- m.Acquire(1) }()
	time.Sleep(20 * time.Millisecond)

	m.mu.Lock()
	delete(m.sessions, 1)
	m.mu.Unlock()
	stale.Unlock()

	var s *Session
	select {
	case s = <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("Acquire did not return")
	}
	defer s.Unlock()

	if s == stale {
		t.Fatal("Acquire returned a session that is no longer registered")
	}
	if m.Get(1) != s {
		t.Error("acquired session must be the registered one")
	}
	if s.Profile.Active() {
		t.Error("fresh session must start idle")
	}
}
