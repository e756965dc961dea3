package telegram

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/summarypro/summarybot/internal/llm"
	"github.com/summarypro/summarybot/internal/ratelimit"
	"github.com/summarypro/summarybot/internal/repository"
	"github.com/summarypro/summarybot/internal/summary"
)

// summarizeTimeout bounds the model round-trip for interactive requests.
const summarizeTimeout = 2 * time.Minute

// Options configures the bot's behavior.
type Options struct {
	SummaryChatID   int64
	SummaryThreadID int64
	MaxMessageCount int
	// AllowedBots may post into the summary thread without being cleaned
	// up (the bot itself and any sibling bots).
	AllowedBots []string
	PollTimeout int
}

// Bot wires the Telegram update stream to the archive and the summary
// pipeline. The only mutable state is the per-user "awaiting count" flag
// and the query gate.
type Bot struct {
	client   *Client
	messages repository.MessageRepository
	service  *summary.Service
	gate     *ratelimit.SlidingWindowLimiter
	opts     Options
	logger   *logrus.Logger

	mu      sync.Mutex
	pending map[int64]bool
}

// NewBot creates the bot.
func NewBot(client *Client, messages repository.MessageRepository, service *summary.Service, gate *ratelimit.SlidingWindowLimiter, opts Options, logger *logrus.Logger) *Bot {
	return &Bot{
		client:   client,
		messages: messages,
		service:  service,
		gate:     gate,
		opts:     opts,
		logger:   logger,
		pending:  make(map[int64]bool),
	}
}

// Run long-polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.opts.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.WithError(err).Error("Failed to fetch updates")
			time.Sleep(3 * time.Second)
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	switch msg.Chat.Type {
	case "group", "supergroup":
		b.handleGroupMessage(ctx, msg)
	case "private":
		b.handlePrivateMessage(ctx, msg)
	}
}

// handleGroupMessage archives the message and keeps the summary thread
// clean of chatter.
func (b *Bot) handleGroupMessage(ctx context.Context, msg *Message) {
	if msg.Text != "" {
		if err := b.messages.Insert(ctx, storedMessage(msg)); err != nil {
			b.logger.WithError(err).Error("Failed to archive message")
		}
	}

	if msg.IsTopicMessage && msg.MessageThreadID == b.opts.SummaryThreadID && !b.isAllowedBot(msg.From) {
		if err := b.client.DeleteMessage(ctx, msg.Chat.ID, msg.MessageID); err != nil {
			b.logger.WithError(err).WithFields(logrus.Fields{
				"chat_id":    msg.Chat.ID,
				"message_id": msg.MessageID,
			}).Error("Failed to delete message from summary thread")
		}
	}
}

func (b *Bot) handlePrivateMessage(ctx context.Context, msg *Message) {
	text := strings.TrimSpace(msg.Text)
	userID := senderID(msg)

	switch {
	case text == "/start":
		b.reply(ctx, msg, welcomeText(msg.From), StartKeyboard())
	case text == "/help":
		b.reply(ctx, msg, helpMessage, nil)
	case text == getSummaryButton:
		b.setPending(userID, true)
		b.reply(ctx, msg, requestCountMessage, NumericKeyboard())
	case b.isPending(userID):
		b.handleCountInput(ctx, msg, text, userID)
	default:
		b.reply(ctx, msg, mainMenuMessage, StartKeyboard())
	}
}

// handleCountInput drives one turn of the summary conversation: cancel,
// rate gate, validation, then the pipeline.
func (b *Bot) handleCountInput(ctx context.Context, msg *Message, text string, userID int64) {
	if strings.EqualFold(text, cancelButton) {
		b.setPending(userID, false)
		b.reply(ctx, msg, cancelledMessage, StartKeyboard())
		return
	}

	if !b.gate.Allow(userID) {
		b.reply(ctx, msg, rateLimitMessage, nil)
		return
	}

	count, err := validateMessageCount(text, b.opts.MaxMessageCount)
	if err != nil {
		b.reply(ctx, msg, err.Error(), NumericKeyboard())
		return
	}

	b.setPending(userID, false)

	runCtx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	summaryText, err := b.service.SummarizeRecent(runCtx, count)
	switch {
	case errors.Is(err, summary.ErrNoMessages):
		b.reply(ctx, msg, noMessagesMessage, nil)
	case errors.Is(err, llm.ErrEmptyResponse):
		b.reply(ctx, msg, noResponseMessage, nil)
	case err != nil:
		b.logger.WithError(err).WithField("user_id", userID).Error("Summary request failed")
		b.reply(ctx, msg, processingErrMessage, nil)
	default:
		b.reply(ctx, msg, summaryPrefix+summaryText, nil)
	}

	b.reply(ctx, msg, newRequestMessage, StartKeyboard())
}

func (b *Bot) reply(ctx context.Context, msg *Message, text string, markup *ReplyKeyboardMarkup) {
	err := b.client.SendMessage(ctx, OutgoingMessage{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		b.logger.WithError(err).WithField("chat_id", msg.Chat.ID).Error("Failed to send reply")
	}
}

func (b *Bot) isAllowedBot(from *User) bool {
	if from == nil {
		return false
	}
	for _, name := range b.opts.AllowedBots {
		if from.Username == name {
			return true
		}
	}
	return false
}

func (b *Bot) setPending(userID int64, waiting bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if waiting {
		b.pending[userID] = true
	} else {
		delete(b.pending, userID)
	}
}

func (b *Bot) isPending(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[userID]
}

// storedMessage maps an incoming message to its archive record. Non-topic
// messages land in the general bucket (NULL thread id).
func storedMessage(msg *Message) repository.StoredMessage {
	stored := repository.StoredMessage{
		MessageID: msg.MessageID,
		Date:      time.Unix(msg.Date, 0).UTC().Format(time.RFC3339),
		Username:  displayName(msg.From),
		Content:   msg.Text,
	}
	if msg.IsTopicMessage {
		stored.ThreadID = sql.NullInt64{Int64: msg.MessageThreadID, Valid: true}
	}
	return stored
}

// senderID keys the pending state and the rate gate. Private chats always
// carry From; the chat id covers the degenerate case anyway.
func senderID(msg *Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}

func displayName(from *User) string {
	if from == nil {
		return "Unknown User"
	}
	if from.Username != "" {
		return from.Username
	}
	if from.FirstName != "" {
		return from.FirstName
	}
	return "Unknown User"
}

func welcomeText(from *User) string {
	return fmt.Sprintf(welcomeMessage, displayName(from))
}
