package events

import (
	"encoding/json"
	"testing"
	"time"
)

// O formato de wire é consumido por clientes WebSocket e pelo tópico Kafka;
// as chaves do payload fazem parte do contrato.
func TestLiveUpdateWireShape(t *testing.T) {
	upd := LiveUpdate{
		SportID: 1,
		Matches: []Match{{
			ID:      "151881156C1A_1_1",
			SportID: 1,
			Home:    "Man Utd",
			Away:    "Chelsea",
			Score:   "1-0",
			Odds:    []Odd{{Name: "1", Value: "2.10"}},
		}},
		Timestamp: time.Now().UTC(),
	}

	b, err := json.Marshal(upd)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"sportId", "matches", "timestamp"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("payload missing %q: %s", key, b)
		}
	}

	var matches []map[string]json.RawMessage
	if err := json.Unmarshal(decoded["matches"], &matches); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "sport_id", "home", "away", "ss", "odds"} {
		if _, ok := matches[0][key]; !ok {
			t.Errorf("match missing %q: %s", key, decoded["matches"])
		}
	}
}
