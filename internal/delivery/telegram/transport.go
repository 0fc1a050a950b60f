package telegram

import (
	"context"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/telebot.v3"

	"employee-app/config"
	"employee-app/internal/delivery/telegram/keyboards"
	"employee-app/internal/logger"
	"employee-app/pkg/workerpool"
)

const (
	maxMessageLen = 3500
	inboxSize     = 16
)

// Transport runs the employee menu over one Telegram chat. It implements
// menu.LineIO: writes are buffered and go out as a single message when the
// menu next waits for input.
type Transport struct {
	out    *outbox
	markup *telebot.ReplyMarkup
	inbox  chan string
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	chatID  int64
	pending strings.Builder
}

// NewTransport serves cfg.ChatID, or the first chat that writes when it is 0.
func NewTransport(sender Sender, cfg config.TelegramConfig, pool *workerpool.WorkerPool) *Transport {
	return &Transport{
		out:    newOutbox(sender, pool, cfg.SendRate),
		markup: keyboards.MenuKeyboard(),
		inbox:  make(chan string, inboxSize),
		done:   make(chan struct{}),
		chatID: cfg.ChatID,
	}
}

func (t *Transport) Register(bot *telebot.Bot) {
	bot.Handle("/start", func(c telebot.Context) error {
		if t.bind(c.Chat().ID) {
			t.flush()
		}
		return nil
	})
	bot.Handle(telebot.OnText, func(c telebot.Context) error {
		t.Deliver(c.Chat().ID, c.Text())
		return nil
	})
}

// Deliver hands a line from chatID to the menu. It reports false when the
// chat is not the one being served or the menu is too far behind.
func (t *Transport) Deliver(chatID int64, text string) bool {
	if !t.bind(chatID) {
		logger.WarnLog(context.Background(), "ignoring message from chat %d", chatID)
		return false
	}
	t.flush()
	select {
	case t.inbox <- text:
		return true
	default:
		logger.WarnLog(context.Background(), "inbox full, dropping message from chat %d", chatID)
		return false
	}
}

func (t *Transport) bind(chatID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.chatID == 0 {
		t.chatID = chatID
		logger.InfoLog(context.Background(), "serving chat %d", chatID)
	}
	return t.chatID == chatID
}

func (t *Transport) ReadLine(ctx context.Context) (string, error) {
	t.flush()
	select {
	case line := <-t.inbox:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.done:
		return "", io.EOF
	}
}

func (t *Transport) Write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending.WriteString(s)
	return nil
}

func (t *Transport) WriteLine(s string) error {
	return t.Write(s + "\n")
}

// Close sends whatever is still buffered and makes pending and future
// reads return io.EOF.
func (t *Transport) Close() {
	t.once.Do(func() {
		close(t.done)
		t.flush()
	})
}

// flush keeps the buffer while no chat is bound.
func (t *Transport) flush() {
	t.mu.Lock()
	if t.chatID == 0 || t.pending.Len() == 0 {
		t.mu.Unlock()
		return
	}
	text := t.pending.String()
	t.pending.Reset()
	chatID := t.chatID
	t.mu.Unlock()

	for _, chunk := range splitMessage(text, maxMessageLen) {
		t.out.send(chatID, chunk, t.markup)
	}
}

// splitMessage cuts text on line boundaries into chunks of at most limit
// bytes. Blank chunks are dropped since Telegram rejects empty messages.
func splitMessage(text string, limit int) []string {
	var chunks []string
	var cur strings.Builder

	emit := func() {
		if strings.TrimSpace(cur.String()) != "" {
			chunks = append(chunks, cur.String())
		}
		cur.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			emit()
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if cur.Len()+len(line) > limit {
			emit()
		}
		cur.WriteString(line)
	}
	emit()
	return chunks
}
