package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// channelPrefix namespaces the pub/sub channels carrying loan notices.
const channelPrefix = "lending:notices:"

// Envelope is the wire format of one published notice.
type Envelope struct {
	AccountID   string            `json:"account_id"`
	NoticeType  string            `json:"notice_type"`
	Details     map[string]string `json:"details,omitempty"`
	PublishedAt time.Time         `json:"published_at"`
}

// RedisNotifier publishes loan notices to Redis pub/sub, one channel per
// notice type.
type RedisNotifier struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(client *redis.Client, logger zerolog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		logger: logger,
	}
}

// Publish sends one notice. Delivery is fire-and-forget: subscribers that
// are not listening miss the message.
func (n *RedisNotifier) Publish(ctx context.Context, accountID, noticeType string, details map[string]string) error {
	payload, err := json.Marshal(Envelope{
		AccountID:   accountID,
		NoticeType:  noticeType,
		Details:     details,
		PublishedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := n.client.Publish(ctx, channelPrefix+noticeType, payload).Err(); err != nil {
		return err
	}

	n.logger.Debug().
		Str("account_id", accountID).
		Str("notice_type", noticeType).
		Msg("notice published")

	return nil
}

// LogNotifier writes notices to the log. It backs deployments that run
// without Redis.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Publish logs the notice.
func (n *LogNotifier) Publish(ctx context.Context, accountID, noticeType string, details map[string]string) error {
	n.logger.Info().
		Str("account_id", accountID).
		Str("notice_type", noticeType).
		Interface("details", details).
		Msg("NOTICE")

	return nil
}
