package telegram

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"employee-app/config"
	"employee-app/pkg/workerpool"
)

type sent struct {
	to   string
	body string
	opts *telebot.SendOptions
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sent
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := sent{to: to.Recipient(), body: what.(string)}
	if len(opts) > 0 {
		s.opts, _ = opts[0].(*telebot.SendOptions)
	}
	f.sent = append(f.sent, s)
	return &telebot.Message{}, nil
}

func newTestTransport(chatID int64) (*Transport, *fakeSender, *workerpool.WorkerPool) {
	sender := &fakeSender{}
	pool := workerpool.NewWorkerPool(1, 64)
	tr := NewTransport(sender, config.TelegramConfig{ChatID: chatID, SendRate: 1000}, pool)
	return tr, sender, pool
}

func TestOutputWaitsForChat(t *testing.T) {
	tr, sender, pool := newTestTransport(0)

	require.NoError(t, tr.WriteLine("=== Employee Database App ==="))
	require.NoError(t, tr.Write("Choose option: "))
	tr.flush()

	assert.True(t, tr.Deliver(7, "2"))

	line, err := tr.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", line)

	pool.Close()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "7", sender.sent[0].to)
	assert.Equal(t, "<pre>=== Employee Database App ===\nChoose option: </pre>", sender.sent[0].body)
	require.NotNil(t, sender.sent[0].opts)
	assert.Equal(t, telebot.ModeHTML, sender.sent[0].opts.ParseMode)
	assert.NotNil(t, sender.sent[0].opts.ReplyMarkup)
}

func TestForeignChatsAreIgnored(t *testing.T) {
	tr, _, pool := newTestTransport(7)
	defer pool.Close()

	assert.False(t, tr.Deliver(8, "5"))
	assert.True(t, tr.Deliver(7, "1"))

	line, err := tr.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", line)
}

func TestFirstChatIsBound(t *testing.T) {
	tr, _, pool := newTestTransport(0)
	defer pool.Close()

	assert.True(t, tr.Deliver(11, "1"))
	assert.False(t, tr.Deliver(12, "1"))
	assert.True(t, tr.Deliver(11, "2"))
}

func TestOutputIsEscaped(t *testing.T) {
	tr, sender, pool := newTestTransport(7)

	require.NoError(t, tr.WriteLine("R&D <lab>"))
	tr.flush()
	pool.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "<pre>R&amp;D &lt;lab&gt;\n</pre>", sender.sent[0].body)
}

func TestLongOutputIsSplit(t *testing.T) {
	tr, sender, pool := newTestTransport(7)

	row := strings.Repeat("x", 59)
	for i := 0; i < 200; i++ {
		require.NoError(t, tr.WriteLine(row))
	}
	tr.flush()
	pool.Close()

	require.Greater(t, len(sender.sent), 1)
	var total int
	for _, s := range sender.sent {
		inner := strings.TrimSuffix(strings.TrimPrefix(s.body, "<pre>"), "</pre>")
		assert.LessOrEqual(t, len(inner), maxMessageLen)
		assert.True(t, strings.HasSuffix(inner, "\n"), "chunks end on a line boundary")
		total += strings.Count(inner, row)
	}
	assert.Equal(t, 200, total)
}

func TestCloseFlushesAndEndsReads(t *testing.T) {
	tr, sender, pool := newTestTransport(7)

	errC := make(chan error, 1)
	go func() {
		_, err := tr.ReadLine(context.Background())
		errC <- err
	}()

	require.NoError(t, tr.WriteLine("Bye!"))
	tr.Close()
	tr.Close()

	select {
	case err := <-errC:
		assert.ErrorIs(t, err, io.EOF)
	case <-time.After(time.Second):
		t.Fatal("ReadLine did not return after Close")
	}

	pool.Close()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "<pre>Bye!\n</pre>", sender.sent[0].body)
}

func TestReadLineHonoursContext(t *testing.T) {
	tr, _, pool := newTestTransport(7)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := tr.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSplitMessage(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		limit    int
		expected []string
	}{
		{name: "fits", text: "a\nb\n", limit: 10, expected: []string{"a\nb\n"}},
		{name: "line boundaries", text: "aaa\nbbb\nccc\n", limit: 8, expected: []string{"aaa\nbbb\n", "ccc\n"}},
		{name: "blank dropped", text: "\n\n", limit: 10, expected: nil},
		{name: "hard split", text: "abcdefgh", limit: 3, expected: []string{"abc", "def", "gh"}},
		{name: "rune safe", text: "ééé", limit: 3, expected: []string{"é", "é", "é"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitMessage(tc.text, tc.limit))
		})
	}
}
