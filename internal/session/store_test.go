// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecarlin/parley/internal/kvstore"
	"github.com/ecarlin/parley/internal/model"
)

func newTestStore(t *testing.T) (*Store, *kvstore.Store) {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	s := New(kv, nil)
	s.Restore(DefaultSettings())
	return s, kv
}

func TestRestoreEmptyCreatesConversation(t *testing.T) {
	s, _ := newTestStore(t)

	require.Equal(t, 1, s.Len())
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, model.DefaultTitle, active.Title)
	assert.Empty(t, active.Messages)
}

func TestCreateIsMostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)
	firstID := s.ActiveID()

	second := s.NewConversation()
	third := s.NewConversation()

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, third.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, firstID, list[2].ID)
	assert.Equal(t, third.ID, s.ActiveID())

	// Ids are unique.
	seen := map[string]bool{}
	for _, meta := range list {
		assert.False(t, seen[meta.ID], "duplicate id %s", meta.ID)
		seen[meta.ID] = true
	}
}

func TestCreateCarriesModelOver(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetModel("llama-3.2-3b")

	conv := s.NewConversation()
	assert.Equal(t, "llama-3.2-3b", conv.Model)
	assert.Equal(t, model.DefaultTitle, conv.Title)
	assert.Empty(t, conv.Messages)
}

func TestSwitchUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	activeID := s.ActiveID()

	assert.False(t, s.Switch("conv_doesnotexist"))
	assert.Equal(t, activeID, s.ActiveID())

	list := s.List()
	require.Len(t, list, 1)
}

func TestSwitchDoesNotReorder(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.ActiveID()
	second := s.NewConversation()

	require.True(t, s.Switch(first))
	assert.Equal(t, first, s.ActiveID())

	list := s.List()
	assert.Equal(t, second.ID, list[0].ID, "switch must not reorder")
	assert.Equal(t, first, list[1].ID)
}

func TestSendAppendsExactlyTwoMessages(t *testing.T) {
	s, _ := newTestStore(t)

	convID, ok := s.AppendUserMessage("what is go?")
	require.True(t, ok)
	require.True(t, s.ApplyReply(convID, "a programming language"))

	active, _ := s.Active()
	require.Len(t, active.Messages, 2)
	assert.Equal(t, model.RoleUser, active.Messages[0].Role)
	assert.Equal(t, "what is go?", active.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, active.Messages[1].Role)
	assert.Equal(t, "a programming language", active.Messages[1].Content)
}

func TestFallbackReplyStillAppends(t *testing.T) {
	s, _ := newTestStore(t)

	convID, _ := s.AppendUserMessage("hello")
	require.True(t, s.ApplyReply(convID, "Sorry, there was an error processing your request."))

	active, _ := s.Active()
	require.Len(t, active.Messages, 2)
	assert.Equal(t, "Sorry, there was an error processing your request.", active.Messages[1].Content)
}

func TestStaleReplyDiscarded(t *testing.T) {
	s, _ := newTestStore(t)

	convID, _ := s.AppendUserMessage("hello")
	require.True(t, s.Delete(convID))

	assert.False(t, s.ApplyReply(convID, "too late"))
	active, _ := s.Active()
	assert.Empty(t, active.Messages, "stale reply must not be reinserted")
}

func TestReplyLandsOnOriginConversationAfterSwitch(t *testing.T) {
	s, _ := newTestStore(t)
	originID, _ := s.AppendUserMessage("question")

	s.NewConversation()
	require.NotEqual(t, originID, s.ActiveID())

	require.True(t, s.ApplyReply(originID, "answer"))

	origin, ok := s.Get(originID)
	require.True(t, ok)
	assert.Len(t, origin.Messages, 2)

	active, _ := s.Active()
	assert.Empty(t, active.Messages)
}

func TestRetitleRules(t *testing.T) {
	t.Run("short title verbatim", func(t *testing.T) {
		s, _ := newTestStore(t)
		convID, _ := s.AppendUserMessage("hello world")
		s.ApplyReply(convID, "hi")

		conv, _ := s.Get(convID)
		assert.Equal(t, "hello world", conv.Title)
	})

	t.Run("long title truncated to 30 runes plus ellipsis", func(t *testing.T) {
		s, _ := newTestStore(t)
		long := strings.Repeat("x", 45)
		convID, _ := s.AppendUserMessage(long)
		s.ApplyReply(convID, "hi")

		conv, _ := s.Get(convID)
		assert.Equal(t, strings.Repeat("x", 30)+"...", conv.Title)
	})

	t.Run("fires only once", func(t *testing.T) {
		s, _ := newTestStore(t)
		convID, _ := s.AppendUserMessage("first question")
		s.ApplyReply(convID, "first answer")

		s.AppendUserMessage("second question")
		s.ApplyReply(convID, "second answer")

		conv, _ := s.Get(convID)
		assert.Equal(t, "first question", conv.Title, "title must not change after the first pair")
	})

	t.Run("exactly 30 runes kept verbatim", func(t *testing.T) {
		s, _ := newTestStore(t)
		exact := strings.Repeat("y", 30)
		convID, _ := s.AppendUserMessage(exact)
		s.ApplyReply(convID, "hi")

		conv, _ := s.Get(convID)
		assert.Equal(t, exact, conv.Title)
	})
}

func TestSettingsRoundTrip(t *testing.T) {
	kvPath := filepath.Join(t.TempDir(), "state.db")
	kv, err := kvstore.Open(kvPath)
	require.NoError(t, err)

	s := New(kv, nil)
	s.Restore(DefaultSettings())
	assert.Equal(t, Settings{Host: "localhost", Port: "1234"}, s.Settings())

	s.UpdateSettings(Settings{Host: "10.0.0.5", Port: "8080"})
	kv.Close()

	kv2, err := kvstore.Open(kvPath)
	require.NoError(t, err)
	defer kv2.Close()

	s2 := New(kv2, nil)
	s2.Restore(DefaultSettings())
	assert.Equal(t, Settings{Host: "10.0.0.5", Port: "8080"}, s2.Settings())
}

func TestConversationsRoundTrip(t *testing.T) {
	kvPath := filepath.Join(t.TempDir(), "state.db")
	kv, err := kvstore.Open(kvPath)
	require.NoError(t, err)

	s := New(kv, nil)
	s.Restore(DefaultSettings())
	convID, _ := s.AppendUserMessage("persist me")
	s.ApplyReply(convID, "done")
	s.NewConversation()
	kv.Close()

	kv2, err := kvstore.Open(kvPath)
	require.NoError(t, err)
	defer kv2.Close()

	s2 := New(kv2, nil)
	s2.Restore(DefaultSettings())

	require.Equal(t, 2, s2.Len())
	// Most recent conversation becomes active on restore.
	active, _ := s2.Active()
	assert.Empty(t, active.Messages)

	older, ok := s2.Get(convID)
	require.True(t, ok)
	require.Len(t, older.Messages, 2)
	assert.Equal(t, "persist me", older.Title)
}

func TestRestoreMalformedStateTreatedAsAbsent(t *testing.T) {
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Put("conversations", []byte("{corrupt")))
	require.NoError(t, kv.Put("settings", []byte("[1,2,3")))

	s := New(kv, nil)
	s.Restore(DefaultSettings())

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, DefaultSettings(), s.Settings())
}

func TestDeleteActiveActivatesMostRecent(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.ActiveID()
	second := s.NewConversation()

	require.True(t, s.Delete(second.ID))
	assert.Equal(t, first, s.ActiveID())

	// Deleting the last conversation leaves a fresh one.
	require.True(t, s.Delete(first))
	assert.Equal(t, 1, s.Len())
	active, _ := s.Active()
	assert.Empty(t, active.Messages)
}

func TestClearKeepsModel(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetModel("qwen2.5")
	s.NewConversation()

	s.Clear()
	require.Equal(t, 1, s.Len())
	active, _ := s.Active()
	assert.Equal(t, "qwen2.5", active.Model)
	assert.Empty(t, active.Messages)
}
