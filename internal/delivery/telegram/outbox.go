package telegram

import (
	"context"
	"html"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"

	"employee-app/internal/logger"
	"employee-app/pkg/workerpool"
)

const sendBurst = 3

// Sender is the part of *telebot.Bot the transport needs.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// outbox sends messages one at a time through the pool, paced by the
// limiter. The pool must have a single worker to keep messages in order.
type outbox struct {
	sender  Sender
	pool    *workerpool.WorkerPool
	limiter *rate.Limiter
}

func newOutbox(sender Sender, pool *workerpool.WorkerPool, perSecond float64) *outbox {
	return &outbox{
		sender:  sender,
		pool:    pool,
		limiter: rate.NewLimiter(rate.Limit(perSecond), sendBurst),
	}
}

// send renders text as preformatted HTML so the table columns line up.
func (o *outbox) send(chatID int64, text string, markup *telebot.ReplyMarkup) {
	body := "<pre>" + html.EscapeString(text) + "</pre>"
	ctx := logger.WithLogger(context.Background(), map[string]interface{}{"chat_id": chatID})

	err := o.pool.Submit(workerpool.Task{Fn: func() (any, error) {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		msg, err := o.sender.Send(&telebot.Chat{ID: chatID}, body, &telebot.SendOptions{
			ParseMode:   telebot.ModeHTML,
			ReplyMarkup: markup,
		})
		if err != nil {
			logger.ErrorLog(ctx, err, "telegram send to chat %d failed", chatID)
		}
		return msg, err
	}})
	if err != nil {
		logger.WarnLog(ctx, "message dropped: %v", err)
	}
}
