package keyboards

import "gopkg.in/telebot.v3"

// MenuKeyboard mirrors the numbered menu: pressing a button sends its digit.
func MenuKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text("1"), markup.Text("2"), markup.Text("3")),
		markup.Row(markup.Text("4"), markup.Text("5")),
	)
	return markup
}
