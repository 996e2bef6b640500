// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecarlin/parley/internal/api"
	"github.com/ecarlin/parley/internal/config"
	"github.com/ecarlin/parley/internal/kvstore"
	"github.com/ecarlin/parley/internal/session"
)

func newTestModel(t *testing.T) (Model, *session.Store) {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	store := session.New(kv, nil)
	store.Restore(session.DefaultSettings())

	m := New(store, api.NewClient(), config.Default(), nil)
	return m, store
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestSendWithoutModelIsNoOp(t *testing.T) {
	m, store := newTestModel(t)
	m.input.SetValue("hello")

	m, cmd := pressEnter(t, m)

	if m.waiting {
		t.Error("waiting = true, want false")
	}
	active, _ := store.Active()
	if len(active.Messages) != 0 {
		t.Errorf("messages = %d, want 0", len(active.Messages))
	}
	// Only the transient status expiry may be scheduled, never a send.
	_ = cmd
	if m.input.Value() != "hello" {
		t.Errorf("input cleared on no-op send: %q", m.input.Value())
	}
}

func TestSendAppendsUserMessageAndWaits(t *testing.T) {
	m, store := newTestModel(t)
	store.SetModel("llama-3.2-3b")
	m.input.SetValue("what is go?")

	m, cmd := pressEnter(t, m)

	if !m.waiting {
		t.Error("waiting = false, want true")
	}
	if cmd == nil {
		t.Error("no command returned for send")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	active, _ := store.Active()
	if len(active.Messages) != 1 || active.Messages[0].Content != "what is go?" {
		t.Errorf("messages = %+v", active.Messages)
	}
}

func TestSendWhileWaitingIsIgnored(t *testing.T) {
	m, store := newTestModel(t)
	store.SetModel("m")
	m.waiting = true
	m.input.SetValue("second send")

	m, _ = pressEnter(t, m)

	active, _ := store.Active()
	if len(active.Messages) != 0 {
		t.Errorf("messages = %d, want 0", len(active.Messages))
	}
}

func TestReplyMsgAppliesAndClearsWaiting(t *testing.T) {
	m, store := newTestModel(t)
	store.SetModel("m")
	convID, _ := store.AppendUserMessage("hi")
	m.waiting = true

	next, _ := m.Update(ReplyMsg{ConvID: convID, Content: "hello back"})
	m = next.(Model)

	if m.waiting {
		t.Error("waiting not cleared")
	}
	active, _ := store.Active()
	if len(active.Messages) != 2 || active.Messages[1].Content != "hello back" {
		t.Errorf("messages = %+v", active.Messages)
	}
}

func TestStaleReplyDiscarded(t *testing.T) {
	m, store := newTestModel(t)
	convID, _ := store.AppendUserMessage("hi")
	store.Delete(convID)

	next, _ := m.Update(ReplyMsg{ConvID: convID, Content: "too late"})
	m = next.(Model)

	active, _ := store.Active()
	if len(active.Messages) != 0 {
		t.Errorf("stale reply reinserted: %+v", active.Messages)
	}
}

func TestModelsMsgErrorIsLogOnly(t *testing.T) {
	m, _ := newTestModel(t)
	m.models = []string{"kept-model"}

	next, _ := m.Update(ModelsMsg{Err: errors.New("connection refused")})
	m = next.(Model)

	if len(m.models) != 1 || m.models[0] != "kept-model" {
		t.Errorf("models = %v, want previous list kept", m.models)
	}
	if m.status != "" {
		t.Errorf("status = %q, want none: refresh failures must not surface", m.status)
	}
}

func TestThrottledRefreshShowsNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m.models = []string{"kept-model"}

	// Back-to-back refreshes can trip the client limiter; that is not a
	// failure and must stay invisible like any other refresh error.
	next, _ := m.Update(ModelsMsg{Err: api.ErrThrottled})
	m = next.(Model)

	if m.status != "" {
		t.Errorf("status = %q, want none for a throttled refresh", m.status)
	}
	if len(m.models) != 1 || m.models[0] != "kept-model" {
		t.Errorf("models = %v, want previous list kept", m.models)
	}
}

func TestModelsMsgSuccessReplacesList(t *testing.T) {
	m, _ := newTestModel(t)
	m.models = []string{"old"}
	m.modelCursor = 5

	next, _ := m.Update(ModelsMsg{Models: []string{"a", "b"}})
	m = next.(Model)

	if len(m.models) != 2 {
		t.Errorf("models = %v", m.models)
	}
	if m.modelCursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.modelCursor)
	}
}

func TestSlashNewCreatesConversation(t *testing.T) {
	m, store := newTestModel(t)
	before := store.ActiveID()
	m.input.SetValue("/new")

	m, _ = pressEnter(t, m)

	if store.Len() != 2 {
		t.Errorf("conversations = %d, want 2", store.Len())
	}
	if store.ActiveID() == before {
		t.Error("active conversation unchanged after /new")
	}
	if m.input.Value() != "" {
		t.Error("input not cleared after command")
	}
}

func TestUnknownCommandSetsStatus(t *testing.T) {
	m, store := newTestModel(t)
	m.input.SetValue("/bogus")

	m, _ = pressEnter(t, m)

	if m.status == "" {
		t.Error("no status for unknown command")
	}
	active, _ := store.Active()
	if len(active.Messages) != 0 {
		t.Error("unknown command reached the conversation")
	}
}

func TestModelPickerSelection(t *testing.T) {
	m, store := newTestModel(t)
	m.mode = modeModels
	m.models = []string{"first", "second"}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.mode != modeChat {
		t.Error("picker did not close on enter")
	}
	active, _ := store.Active()
	if active.Model != "second" {
		t.Errorf("model = %q, want %q", active.Model, "second")
	}
}

func TestSettingsSaveCommitsAndRepointsClient(t *testing.T) {
	m, store := newTestModel(t)
	m.openSettings()
	m.hostInput.SetValue("10.1.2.3")
	m.portInput.SetValue("9090")

	m, _ = pressEnter(t, m)

	if m.mode != modeChat {
		t.Error("settings did not close on save")
	}
	got := store.Settings()
	if got.Host != "10.1.2.3" || got.Port != "9090" {
		t.Errorf("settings = %+v", got)
	}
	if m.client.BaseURL() != "http://10.1.2.3:9090" {
		t.Errorf("client base url = %q", m.client.BaseURL())
	}
}

func TestSettingsEscapeDiscardsPending(t *testing.T) {
	m, store := newTestModel(t)
	m.openSettings()
	m.hostInput.SetValue("edited")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	if m.mode != modeChat {
		t.Error("settings did not close on esc")
	}
	if store.Settings().Host != "localhost" {
		t.Errorf("pending edit leaked: %+v", store.Settings())
	}
}
