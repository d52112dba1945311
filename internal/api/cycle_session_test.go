package api

import (
	"testing"
	"time"
)

func TestCycleSessionCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec, err := newCycleSessionCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}

	state := cycleSessionState{LastPeriodStart: "2024-10-01", CycleLength: 45, Day: 7, Irregular: true}
	token, err := codec.encode(state, testNow)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := codec.decode(token, testNow.Add(29*24*time.Hour))
	if err != nil {
		t.Fatalf("decode within ttl: %v", err)
	}
	if decoded != state {
		t.Fatalf("expected %+v, got %+v", state, decoded)
	}

	if _, err := codec.decode(token, testNow.Add(cycleSessionTTL+time.Minute)); err == nil {
		t.Fatal("expected token past ttl to be rejected")
	}
}

func TestCycleSessionCodecDerivesKeyFromSecret(t *testing.T) {
	t.Parallel()

	if _, err := newCycleSessionCodec(nil); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}

	first, err := newCycleSessionCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}
	second, err := newCycleSessionCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}
	if string(first.key) != string(second.key) {
		t.Fatal("expected key derivation to be deterministic")
	}
	if string(first.key) == testSecretKey[:32] {
		t.Fatal("expected derived key to differ from raw secret")
	}
}
