package events

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/beka-birhanu/patrol-api/infrastruture/logger"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatsPublisher(t *testing.T) {
	url := os.Getenv("NATS_TEST_URL")
	if url == "" {
		t.Skip("NATS_TEST_URL not set")
	}

	log, err := logger.New("EVENTS", "", io.Discard)
	require.NoError(t, err)

	pub, err := NewNatsPublisher(Config{
		URL:            url,
		Name:           "patrol-api-test",
		ReconnectWait:  time.Second,
		MaxReconnects:  1,
		ConnectTimeout: 2 * time.Second,
	}, log)
	require.NoError(t, err)
	defer pub.Close()

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()

	inbox, err := sub.SubscribeSync("patrol.results.created")
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	require.NoError(t, pub.Publish(context.Background(), "patrol.results.created", []byte(`{"resultId":"r-1"}`)))

	msg, err := inbox.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resultId":"r-1"}`, string(msg.Data))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(canceled, "patrol.results.created", nil), context.Canceled)
}
