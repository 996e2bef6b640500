// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"sync"

	"github.com/ecarlin/parley/internal/kvstore"
	"github.com/ecarlin/parley/internal/log"
	"github.com/ecarlin/parley/internal/model"
)

// =============================================================================
// PERSISTENCE KEYS
// =============================================================================

// The two independent entries in the key-value store.
const (
	keyConversations = "conversations"
	keySettings      = "settings"
)

// =============================================================================
// STORE
// =============================================================================

// Store owns all conversation and settings state. The UI reads snapshots and
// mutates through methods; every mutation is persisted immediately. Async
// completion results are applied with an explicit compare-and-update: a
// result whose conversation no longer exists is discarded.
type Store struct {
	mu            sync.Mutex
	conversations []*model.Conversation // Most-recent-first
	activeID      string
	settings      Settings
	kv            *kvstore.Store
	logger        *log.Logger
}

// New creates a store over the given key-value backend. Call Restore before
// first use.
func New(kv *kvstore.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		kv:       kv,
		settings: DefaultSettings(),
		logger:   logger,
	}
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore loads persisted state. Missing or malformed entries are treated as
// absent, never fatal. The first (most recent) conversation becomes active;
// an empty list gets a fresh conversation so the UI always has one.
func (s *Store) Restore(defaults Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaults.fillDefaults()
	s.settings = defaults

	if data, err := s.kv.Get(keySettings); err == nil {
		var stored Settings
		if err := json.Unmarshal(data, &stored); err != nil {
			s.logger.Error("restore_settings_discarded", err, "")
		} else {
			stored.fillDefaults()
			s.settings = stored
		}
	}

	if data, err := s.kv.Get(keyConversations); err == nil {
		var stored []*model.Conversation
		if err := json.Unmarshal(data, &stored); err != nil {
			s.logger.Error("restore_conversations_discarded", err, "")
		} else {
			s.conversations = stored
		}
	}

	if len(s.conversations) == 0 {
		s.conversations = []*model.Conversation{model.NewConversation("")}
		s.persistConversations()
	}
	s.activeID = s.conversations[0].ID
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// NewConversation creates a conversation carrying over the active model,
// inserts it at the front of the list, and makes it active.
func (s *Store) NewConversation() model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	carryModel := ""
	if active := s.find(s.activeID); active != nil {
		carryModel = active.Model
	}

	conv := model.NewConversation(carryModel)
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	s.persistConversations()
	return *conv
}

// Switch makes the conversation with the given id active. Unknown ids are a
// silent no-op; the list is never reordered.
func (s *Store) Switch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return false
	}
	s.activeID = id
	return true
}

// Active returns a snapshot of the active conversation.
func (s *Store) Active() (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv := s.find(s.activeID); conv != nil {
		return *conv, true
	}
	return model.Conversation{}, false
}

// ActiveID returns the active conversation id.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Get returns a snapshot of the conversation with the given id.
func (s *Store) Get(id string) (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv := s.find(id); conv != nil {
		return *conv, true
	}
	return model.Conversation{}, false
}

// List returns sidebar metadata for all conversations, most recent first.
func (s *Store) List() []model.ConversationMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	metas := make([]model.ConversationMeta, len(s.conversations))
	for i, conv := range s.conversations {
		metas[i] = conv.Meta()
	}
	return metas
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// Delete removes the conversation with the given id. When the active one is
// removed, the most recent remaining conversation becomes active; deleting
// the last conversation leaves a fresh empty one.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, conv := range s.conversations {
		if conv.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)
	if len(s.conversations) == 0 {
		s.conversations = []*model.Conversation{model.NewConversation("")}
	}
	if s.activeID == id {
		s.activeID = s.conversations[0].ID
	}
	s.persistConversations()
	return true
}

// Clear removes all conversations, leaving one fresh empty conversation that
// keeps the previously active model.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	carryModel := ""
	if active := s.find(s.activeID); active != nil {
		carryModel = active.Model
	}
	conv := model.NewConversation(carryModel)
	s.conversations = []*model.Conversation{conv}
	s.activeID = conv.ID
	s.persistConversations()
}

// =============================================================================
// MESSAGES
// =============================================================================

// AppendUserMessage appends a user message to the active conversation and
// returns its id for the later compare-and-update of the reply.
func (s *Store) AppendUserMessage(content string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(s.activeID)
	if conv == nil {
		return "", false
	}
	conv.Append(model.NewUserMessage(content))
	s.persistConversations()
	return conv.ID, true
}

// ApplyReply appends an assistant message to the conversation the request
// was sent from. If that conversation no longer exists the stale result is
// discarded. After appending, the conversation is retitled when it still
// carries the placeholder title and now holds exactly its first
// user/assistant pair.
func (s *Store) ApplyReply(convID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(convID)
	if conv == nil {
		s.logger.Event("stale_reply_discarded", convID)
		return false
	}

	conv.Append(model.NewAssistantMessage(content))

	if conv.Title == model.DefaultTitle && conv.MessageCount() == 2 {
		if first, ok := conv.FirstUserMessage(); ok {
			conv.Title = model.DeriveTitle(first.Content)
		}
	}

	s.persistConversations()
	return true
}

// SetModel sets the active conversation's model.
func (s *Store) SetModel(modelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(s.activeID)
	if conv == nil {
		return
	}
	conv.Model = modelID
	s.persistConversations()
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings returns the active settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the active settings. Called only on an explicit
// save; pending edits live in the settings form until then.
func (s *Store) UpdateSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.fillDefaults()
	s.settings = settings
	s.persistSettings()
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// persistConversations writes the full list. Callers hold the lock. Write
// failures are logged and swallowed; the in-memory state stays usable.
func (s *Store) persistConversations() {
	data, err := json.Marshal(s.conversations)
	if err != nil {
		s.logger.Error("persist_conversations_failed", err, "")
		return
	}
	if err := s.kv.Put(keyConversations, data); err != nil {
		s.logger.Error("persist_conversations_failed", err, "")
	}
}

// persistSettings writes the active settings. Callers hold the lock.
func (s *Store) persistSettings() {
	data, err := json.Marshal(s.settings)
	if err != nil {
		s.logger.Error("persist_settings_failed", err, "")
		return
	}
	if err := s.kv.Put(keySettings, data); err != nil {
		s.logger.Error("persist_settings_failed", err, "")
	}
}

// find returns the conversation with the given id. Callers hold the lock.
func (s *Store) find(id string) *model.Conversation {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}
