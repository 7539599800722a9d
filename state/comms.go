// ABOUTME: Email, integration, inbox and file operations
// ABOUTME: Collaborator failures are reported as false and logged, never returned
package state

import (
	"context"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// JustNow is the relative timestamp written by inbox and integration updates.
const JustNow = "Just now"

// SendEmail delivers through the email collaborator. It reports false
// without waiting when the recipient is invalid, a header carries a line
// break or the configured provider lacks its credential, and false when
// delivery fails.
func (s *State) SendEmail(ctx context.Context, to, subject, body string) bool {
	if err := s.validate.Var(to, "required,email"); err != nil {
		s.logger.Debug("rejected email recipient", zap.String("to", to), zap.Error(err))
		return false
	}

	cfg := s.EmailSettings.Get()
	if missing := cfg.MissingCredential(); missing != "" {
		s.logger.Info("email provider not configured",
			zap.String("provider", cfg.Provider),
			zap.String("missing", missing),
		)
		return false
	}

	msg := collab.Email{To: to, Subject: subject, Body: body}
	if err := collab.CheckHeaders(cfg, msg); err != nil {
		s.logger.Info("rejected email headers", zap.Error(err))
		return false
	}

	err := s.email.Send(ctx, cfg, msg)
	if err != nil {
		s.logger.Warn("email send failed", zap.String("provider", cfg.Provider), zap.Error(err))
		return false
	}
	return true
}

// TriggerIntegrationAction runs action on a connected integration. Unknown
// or unconnected integrations report false without calling out.
func (s *State) TriggerIntegrationAction(ctx context.Context, integrationID, action string, data map[string]any) bool {
	integration, ok := s.Integrations.Get(integrationID)
	if !ok || integration.Status != models.IntegrationConnected {
		return false
	}

	if err := s.integrator.Trigger(ctx, integration, action, data); err != nil {
		s.logger.Warn("integration action failed",
			zap.String("integration", integrationID),
			zap.String("action", action),
			zap.Error(err),
		)
		return false
	}
	return true
}

// ConnectIntegration upserts in by id. Non-empty fields of in overwrite the
// stored record; status and lastSync are always forced to connected and
// "Just now". Unknown ids are appended.
func (s *State) ConnectIntegration(in models.Integration) models.Integration {
	var out models.Integration
	s.commit(func() []string {
		c := s.Integrations
		i := c.index(in.ID)
		if i < 0 {
			if in.ID == "" {
				in.ID = ulid.Make().String()
			}
			in.Status = models.IntegrationConnected
			in.LastSync = JustNow
			c.insert(in)
			out = in
			return []string{SliceIntegrations}
		}

		merged := c.items[i]
		if in.Name != "" {
			merged.Name = in.Name
		}
		if in.Category != "" {
			merged.Category = in.Category
		}
		merged.Status = models.IntegrationConnected
		merged.LastSync = JustNow
		c.items[i] = merged
		out = merged
		return []string{SliceIntegrations}
	})
	return out
}

// DisconnectIntegration marks an integration disconnected. It reports false
// for unknown ids.
func (s *State) DisconnectIntegration(id string) bool {
	found := false
	s.commit(func() []string {
		i := s.Integrations.index(id)
		if i < 0 {
			return nil
		}
		s.Integrations.items[i].Status = models.IntegrationDisconnected
		found = true
		return []string{SliceIntegrations}
	})
	return found
}

// AddMessage appends msg and updates its conversation's preview in the
// same transition. The conversation is unread only when the other side
// sent the message. A message for an unknown conversation is still stored.
func (s *State) AddMessage(msg models.Message) models.Message {
	if msg.ID == "" {
		msg.ID = ulid.Make().String()
	}

	s.commit(func() []string {
		s.Messages.insert(msg)
		changed := []string{SliceMessages}

		if i := s.Conversations.index(msg.ConversationID); i >= 0 {
			conv := &s.Conversations.items[i]
			conv.LastMessage = msg.Text
			conv.Timestamp = JustNow
			conv.Unread = msg.Sender == models.SenderThem
			changed = append(changed, SliceConversations)
		}
		return changed
	})
	return msg
}

// ToggleStarFile flips a file's starred flag. It reports false for unknown
// ids.
func (s *State) ToggleStarFile(id string) bool {
	found := false
	s.commit(func() []string {
		i := s.Files.index(id)
		if i < 0 {
			return nil
		}
		s.Files.items[i].Starred = !s.Files.items[i].Starred
		found = true
		return []string{SliceFiles}
	})
	return found
}

// MarkConversationRead clears a conversation's unread flag.
func (s *State) MarkConversationRead(id string) bool {
	found := false
	s.commit(func() []string {
		i := s.Conversations.index(id)
		if i < 0 || !s.Conversations.items[i].Unread {
			found = i >= 0
			return nil
		}
		s.Conversations.items[i].Unread = false
		found = true
		return []string{SliceConversations}
	})
	return found
}
