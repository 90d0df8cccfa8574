package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/waseem96525/GPStrackingapp/internal/model"
)

func receiveEvent(t *testing.T, c *Client) model.WSEvent {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		var event model.WSEvent
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return model.WSEvent{}
}

func TestPublishDeliversInAcceptanceOrder(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil)
	hub.Register(client)

	const n = 10
	for i := 0; i < n; i++ {
		hub.Publish(&model.WSEvent{
			Type:    model.WSEventLocationUpdate,
			Payload: map[string]int{"seq": i},
		})
	}

	for i := 0; i < n; i++ {
		event := receiveEvent(t, client)
		if event.Type != model.WSEventLocationUpdate {
			t.Fatalf("expected %s, got %s", model.WSEventLocationUpdate, event.Type)
		}
		payload := event.Payload.(map[string]interface{})
		if seq := int(payload["seq"].(float64)); seq != i {
			t.Fatalf("expected event %d in order, got %d", i, seq)
		}
	}
}

func TestLateObserverMissesEarlierEvents(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	early := NewClient(hub, nil)
	hub.Register(early)
	hub.Publish(&model.WSEvent{Type: model.WSEventLocationUpdate, Payload: map[string]int{"seq": 0}})

	// The first event must reach the early observer before the late one
	// subscribes, otherwise the test races the hub loop.
	receiveEvent(t, early)

	late := NewClient(hub, nil)
	hub.Register(late)
	hub.Publish(&model.WSEvent{Type: model.WSEventLocationUpdate, Payload: map[string]int{"seq": 1}})

	event := receiveEvent(t, late)
	payload := event.Payload.(map[string]interface{})
	if seq := int(payload["seq"].(float64)); seq != 1 {
		t.Fatalf("late observer must only see events published after subscribing, got seq %d", seq)
	}

	select {
	case data, ok := <-late.send:
		if ok {
			t.Fatalf("late observer received unexpected extra event: %s", data)
		}
	default:
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil)
	hub.Register(client)
	hub.Unregister(client)

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-client.send:
			if !ok {
				if hub.ClientCount() != 0 {
					t.Fatalf("expected subscription slot released, %d clients remain", hub.ClientCount())
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for send channel to close")
		}
	}
}

func TestSlowObserverDroppedWithoutStallingOthers(t *testing.T) {
	hub := NewHub(nil)

	// A deliberately tiny buffer stands in for an observer that stopped
	// reading; the healthy observer keeps its default buffer.
	slow := &Client{hub: hub, send: make(chan []byte, 1), ID: uuid.New()}
	healthy := NewClient(hub, nil)
	hub.addClient(slow)
	hub.addClient(healthy)

	for i := 0; i < 3; i++ {
		hub.broadcastToLocal(&model.WSEvent{
			Type:    model.WSEventLocationUpdate,
			Payload: map[string]int{"seq": i},
		})
	}

	if hub.ClientCount() != 1 {
		t.Fatalf("expected the slow observer to be dropped, %d clients remain", hub.ClientCount())
	}

	for i := 0; i < 3; i++ {
		event := receiveEvent(t, healthy)
		payload := event.Payload.(map[string]interface{})
		if seq := int(payload["seq"].(float64)); seq != i {
			t.Fatalf("healthy observer missed or reordered events: expected %d, got %d", i, seq)
		}
	}
}
