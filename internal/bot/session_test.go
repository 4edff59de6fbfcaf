package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewRequiresHandler(t *testing.T) {
	if _, err := New(Config{Token: "x"}); err == nil {
		t.Fatal("expected error without a handler")
	}
}

func TestReadinessFollowsGatewayEvents(t *testing.T) {
	s, err := New(Config{Token: "x", Handler: &fakeHandler{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Ready() {
		t.Fatal("new session should not be ready before connecting")
	}

	s.onReady(nil, &discordgo.Ready{SessionID: "s1"})
	if !s.Ready() {
		t.Error("ready event should mark the session up")
	}

	s.onDisconnect(nil, &discordgo.Disconnect{})
	if s.Ready() {
		t.Error("disconnect should mark the session down")
	}

	// A reconnect that cannot resume delivers Ready, not Resumed.
	s.onReady(nil, &discordgo.Ready{SessionID: "s2"})
	if !s.Ready() {
		t.Error("fresh session after disconnect should mark the session up")
	}

	s.onDisconnect(nil, &discordgo.Disconnect{})
	s.onResumed(nil, &discordgo.Resumed{})
	if !s.Ready() {
		t.Error("resumed event should mark the session up")
	}
}
