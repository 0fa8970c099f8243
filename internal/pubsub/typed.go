package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MetaKeyEventID carries the unique id assigned to every typed event.
const MetaKeyEventID = "event_id"

// EventInfo describes a registered event for listings (see Catalog).
type EventInfo struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TypeName      string   `json:"type"`
	PayloadFields []string `json:"payloadFields"`
}

var (
	catalogMu sync.RWMutex
	catalog   = map[string]EventInfo{}
)

// Event[T] wraps a topic name and provides type-safe publishing.
type Event[T any] struct {
	topicName string
}

// NewEvent creates a typed event and records it in the catalog. The payload
// field names are taken from the json tags of T. Defining the same name twice
// panics, since events are declared at package level.
func NewEvent[T any](name string, description string) Event[T] {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var fields []string
	typeName := ""
	if t != nil {
		typeName = t.Name()
		if t.Kind() == reflect.Struct {
			for i := 0; i < t.NumField(); i++ {
				tag := t.Field(i).Tag.Get("json")
				if tag == "" || tag == "-" {
					continue
				}
				name, _, _ := strings.Cut(tag, ",")
				fields = append(fields, name)
			}
		}
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()
	if _, exists := catalog[name]; exists {
		panic(fmt.Sprintf("pubsub: event %q already defined", name))
	}
	catalog[name] = EventInfo{
		Name:          name,
		Description:   description,
		TypeName:      typeName,
		PayloadFields: fields,
	}

	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Catalog returns every defined event sorted by name.
func Catalog() []EventInfo {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	out := make([]EventInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
// userID names the actor and may be empty.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], userID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}

	return p.Publish(ctx, Message{
		Topic:    event.Name(),
		UserID:   userID,
		Payload:  data,
		Metadata: map[string]string{MetaKeyEventID: uuid.NewString()},
	})
}

// Subscribe decodes each message on the event's topic into T before calling handler.
// Payloads that fail to decode are reported as handler errors.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, msg Message, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Name(), err)
		}
		return handler(ctx, msg, payload)
	})
}
