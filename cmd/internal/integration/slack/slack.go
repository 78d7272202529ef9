package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fruitcal/cmd/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const sendTimeout = 10 * time.Second

var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Client posts messages to a Slack incoming webhook. Delivery is strictly
// best-effort: an empty webhook URL makes every call a no-op, and transport
// failures are logged without ever reaching the caller.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

func New(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{},
	}
}

// NotifyLeave announces a newly booked or rescheduled leave to the channel.
func (c *Client) NotifyLeave(sched *entity.Schedule, updated bool) {
	action := "사용 예정입니다"
	if updated {
		action = "로 변경되었습니다"
	}

	text := fmt.Sprintf("*%s* %s %s.\n업무에 참고 부탁드립니다 🙇‍♂️",
		formatRange(sched), sched.Category.Label(), action)

	go c.send(buildPayload(sched.Title, text))
}

// NotifyReminder fires a manual reminder for any schedule category.
func (c *Client) NotifyReminder(sched *entity.Schedule) {
	text := fmt.Sprintf("*%s* %s 리마인드 드립니다.\n업무에 참고 부탁드립니다 🙇‍♂️",
		formatRange(sched), sched.Category.Label())

	go c.send(buildPayload(sched.Title, text))
}

type payload struct {
	Attachments []attachment `json:"attachments"`
}

type attachment struct {
	Color  string  `json:"color"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type   string      `json:"type"`
	Text   *blockText  `json:"text,omitempty"`
	Fields []blockText `json:"fields,omitempty"`
}

type blockText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func buildPayload(title, text string) payload {
	return payload{
		Attachments: []attachment{{
			Color: "#36a64f",
			Blocks: []block{
				{
					Type: "header",
					Text: &blockText{Type: "plain_text", Text: "🏖 " + title, Emoji: true},
				},
				{
					Type:   "section",
					Fields: []blockText{{Type: "mrkdwn", Text: text}},
				},
			},
		}},
	}
}

// formatKoreanDate renders YYYY-MM-DD as "2024. 3. 4(월)".
func formatKoreanDate(ymd string) string {
	t, err := time.Parse("2006-01-02", ymd)
	if err != nil {
		return ymd
	}
	return fmt.Sprintf("%d. %d. %d(%s)",
		t.Year(), int(t.Month()), t.Day(), koreanWeekdays[int(t.Weekday())])
}

func formatRange(sched *entity.Schedule) string {
	end := sched.RangeEnd()
	if end != sched.Date {
		return formatKoreanDate(sched.Date) + " ~ " + formatKoreanDate(end)
	}
	return formatKoreanDate(sched.Date)
}

func (c *Client) send(p payload) {
	if c.webhookURL == "" {
		return
	}

	body, err := json.Marshal(p)
	if err != nil {
		log.Errorf("slack: marshal payload: %v", err)
		return
	}

	eventID := uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Errorf("slack: create request %s: %v", eventID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Fruitcal-Event-ID", eventID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("slack: send %s: %v", eventID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Errorf("slack: send %s: status %d: %s", eventID, resp.StatusCode, respBody)
	}
}
