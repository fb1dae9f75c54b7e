package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"Estimator/internal/calc/report"
	"Estimator/internal/calc/tools"
)

const (
	apiURL = "https://api.telegram.org"
	// maxMessage stays below Telegram's 4096 character message limit.
	maxMessage = 4000
)

type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message"`
}

type UpdateResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []Update `json:"result"`
}

type button struct {
	Text string `json:"text"`
	Data string `json:"callback_data"`
}

// Bot answers report commands from the admin chat.
type Bot struct {
	Token   string
	AdminID int64
	BaseURL string
	Client  *http.Client
	Sources map[string]report.Source
	Log     *zap.SugaredLogger
}

// commands maps chat commands to report sources. Arguments, when a command
// takes any, go into the source input under the given key.
var commands = map[string]struct {
	tool string
	key  string
}{
	"/hydrogen":  {"hydrogen", "volumes_l"},
	"/altitude":  {"atmosphere", "altitudes_m"},
	"/sweep":     {"altitude-sweep", "altitudes_m"},
	"/solar":     {"solar", ""},
	"/container": {"container", ""},
	"/plants":    {"microgreens", ""},
	"/harvest":   {"harvest", ""},
}

const help = `Commands:
/hydrogen <litres...>
/altitude <metres...>
/sweep <metres...>
/solar
/container
/plants
/harvest`

func (b *Bot) url(method string) string {
	base := b.BaseURL
	if base == "" {
		base = apiURL
	}
	return fmt.Sprintf("%s/bot%s/%s", base, b.Token, method)
}

// Run long-polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	for {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.Log.Warnw("getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(2 * time.Second):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			b.handle(ctx, u)
		}
	}
}

func (b *Bot) handle(ctx context.Context, u Update) {
	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *Message) {
	if m.Chat.ID != b.AdminID {
		b.Log.Infow("ignoring message from unknown chat", "chat", m.Chat.ID)
		return
	}
	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return
	}
	name := strings.SplitN(fields[0], "@", 2)[0]
	if name == "/start" || name == "/help" {
		b.send(ctx, m.Chat.ID, help, keyboard())
		return
	}
	cmd, ok := commands[name]
	if !ok {
		b.send(ctx, m.Chat.ID, "Unknown command\n\n"+help, nil)
		return
	}
	text, err := b.render(cmd.tool, cmd.key, fields[1:])
	if err != nil {
		b.send(ctx, m.Chat.ID, "Error: "+err.Error(), nil)
		return
	}
	b.sendReport(ctx, m.Chat.ID, text)
}

func (b *Bot) handleCallback(ctx context.Context, cb *CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat.ID != b.AdminID {
		b.answerCallback(ctx, cb.ID, "Not allowed")
		return
	}
	parts := strings.Split(cb.Data, ":")
	if len(parts) != 2 || parts[0] != "report" {
		b.answerCallback(ctx, cb.ID, "Bad data")
		return
	}
	text, err := b.render(parts[1], "", nil)
	if err != nil {
		b.answerCallback(ctx, cb.ID, "Unknown report")
		return
	}
	b.answerCallback(ctx, cb.ID, "OK")
	b.sendReport(ctx, cb.Message.Chat.ID, text)
}

// render builds the text report of tool. Numeric args become a list under
// key in the input.
func (b *Bot) render(tool, key string, args []string) (string, error) {
	src, ok := b.Sources[tool]
	if !ok {
		return "", errors.Newf("unknown report %q", tool)
	}
	raw, err := tools.ListInput(key, args)
	if err != nil {
		return "", err
	}
	doc, err := src(raw)
	if err != nil {
		return "", err
	}
	return report.Text(doc), nil
}

func keyboard() any {
	rows := [][]button{
		{{"Solar", "report:solar"}, {"Container", "report:container"}},
		{{"Harvest", "report:harvest"}, {"Plants", "report:microgreens"}},
		{{"Altitude sweep", "report:altitude-sweep"}},
	}
	return map[string]any{"inline_keyboard": rows}
}

// chunks splits text at line breaks into pieces of at most n bytes. A line
// longer than n is cut without breaking an HTML entity or a UTF-8 sequence.
func chunks(text string, n int) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > n {
			flush()
			head, rest := cut(line, n)
			out = append(out, head)
			line = rest
		}
		if cur.Len()+len(line) > n {
			flush()
		}
		cur.WriteString(line)
	}
	flush()
	return out
}

func cut(line string, n int) (string, string) {
	i := n
	if amp := strings.LastIndexByte(line[:i], '&'); amp > 0 && !strings.Contains(line[amp:i], ";") {
		i = amp
	}
	for i > 0 && !utf8.RuneStart(line[i]) {
		i--
	}
	if i == 0 {
		i = n
	}
	return line[:i], line[i:]
}

// sendReport escapes before splitting so every message, wrapper included,
// fits maxMessage.
func (b *Bot) sendReport(ctx context.Context, chatID int64, text string) {
	for _, part := range chunks(html.EscapeString(text), maxMessage-len("<pre></pre>")) {
		b.send(ctx, chatID, "<pre>"+part+"</pre>", nil)
	}
}

func (b *Bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?timeout=20&offset=%d", b.url("getUpdates"), offset), nil)
	if err != nil {
		return nil, err
	}
	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding updates")
	}
	if !out.OK {
		return nil, errors.Newf("telegram: %s", out.Description)
	}
	return out.Result, nil
}

func (b *Bot) post(ctx context.Context, method string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		b.Log.Errorw("encoding payload", "method", method, "error", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url(method), bytes.NewReader(body))
	if err != nil {
		b.Log.Errorw("building request", "method", method, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := b.Client.Do(req)
	if err != nil {
		b.Log.Warnw("telegram request failed", "method", method, "error", err)
		return
	}
	res.Body.Close()
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markup any) {
	payload := map[string]any{"chat_id": chatID, "text": text}
	if strings.HasPrefix(text, "<pre>") {
		payload["parse_mode"] = "HTML"
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}
	b.post(ctx, "sendMessage", payload)
}

func (b *Bot) answerCallback(ctx context.Context, id, text string) {
	b.post(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": id, "text": text})
}
