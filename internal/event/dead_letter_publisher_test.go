package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDeadLetterPublisher_FailureIsCapturedNotRetried(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	succeeded := 0
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		succeeded++
		return nil
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler failure")
	})

	path := filepath.Join(t.TempDir(), "dead_letter.jsonl")
	pub := NewDeadLetterPublisher(bus, DefaultDeadLetterConfig(path))

	err := pub.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	// The healthy subscriber saw the event exactly once; the failure was
	// not replayed through the bus
	if succeeded != 1 {
		t.Errorf("Expected 1 delivery to healthy subscriber, got %d", succeeded)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open dead letter file: %v", err)
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("Failed to decode dead letter entry: %v", err)
		}
		entries = append(entries, entry)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 dead letter entry, got %d", len(entries))
	}
	if entries[0].Event.Type != eventType {
		t.Errorf("Expected entry type %s, got %s", eventType, entries[0].Event.Type)
	}
	if entries[0].LastError == "" {
		t.Error("Expected entry to record the publish error")
	}
}

func TestDeadLetterPublisher_SuccessWritesNothing(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return nil
	})

	path := filepath.Join(t.TempDir(), "dead_letter.jsonl")
	pub := NewDeadLetterPublisher(bus, DefaultDeadLetterConfig(path))

	if err := pub.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: eventType}); err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no dead letter file, stat err = %v", err)
	}
}
