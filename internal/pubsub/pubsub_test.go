package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetMoved struct {
	WidgetID string `json:"widgetId"`
	From     int    `json:"from,omitempty"`
	To       int    `json:"to"`
	Note     string
}

var testWidgetMoved = NewEvent[widgetMoved]("widgets.moved", "A widget changed position")

func TestNewEvent_RecordsCatalogEntry(t *testing.T) {
	var found *EventInfo
	for _, info := range Catalog() {
		if info.Name == "widgets.moved" {
			found = &info
			break
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "A widget changed position", found.Description)
	assert.Equal(t, "widgetMoved", found.TypeName)
	assert.Equal(t, []string{"widgetId", "from", "to"}, found.PayloadFields)
}

func TestNewEvent_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewEvent[widgetMoved]("widgets.moved", "again")
	})
}

func TestWatermillBridge_TypedRoundTrip(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	type received struct {
		msg     Message
		payload widgetMoved
	}
	got := make(chan received, 1)
	err := Subscribe(ctx, bridge, testWidgetMoved, func(ctx context.Context, msg Message, payload widgetMoved) error {
		got <- received{msg: msg, payload: payload}
		return nil
	})
	require.NoError(t, err)

	err = Publish(ctx, bridge, testWidgetMoved, "user-1", widgetMoved{WidgetID: "w1", From: 1, To: 2})
	require.NoError(t, err)

	select {
	case r := <-got:
		assert.Equal(t, "widgets.moved", r.msg.Topic)
		assert.Equal(t, "user-1", r.msg.UserID)
		assert.NotEmpty(t, r.msg.Metadata[MetaKeyEventID])
		assert.Equal(t, widgetMoved{WidgetID: "w1", From: 1, To: 2}, r.payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillBridge_HandlerErrorDoesNotBlockLaterMessages(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	calls := make(chan string, 4)
	err := bridge.Subscribe(ctx, "jobs", func(ctx context.Context, msg Message) error {
		calls <- string(msg.Payload)
		if string(msg.Payload) == "bad" {
			return errors.New("boom")
		}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bridge.Publish(ctx, Message{Topic: "jobs", Payload: []byte("bad")}))
	require.NoError(t, bridge.Publish(ctx, Message{Topic: "jobs", Payload: []byte("good")}))

	var seen []string
	for len(seen) < 2 {
		select {
		case p := <-calls:
			seen = append(seen, p)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	assert.Equal(t, []string{"bad", "good"}, seen)
}

func TestMapToPubSubMessage_KeepsCustomMetadata(t *testing.T) {
	wm := mapToWatermillMessage(Message{
		Topic:    "t",
		UserID:   "u",
		Payload:  []byte("{}"),
		Metadata: map[string]string{"trace": "abc"},
	})
	msg := mapToPubSubMessage(wm)

	assert.Equal(t, "t", msg.Topic)
	assert.Equal(t, "u", msg.UserID)
	assert.Equal(t, "abc", msg.Metadata["trace"])
	assert.Equal(t, "u", msg.Metadata[metaKeyUserID])
	_, hasTopic := msg.Metadata[metaKeyTopic]
	assert.False(t, hasTopic)
}
