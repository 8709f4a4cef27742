package feed

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return b
}

type item map[string]any

func category(name string) item { return item{"type": "CT", "NA": name} }

func event(id, name string) item {
	return item{"type": "EV", "ID": id, "NA": name, "SS": "1-0", "TM": "45", "TT": "1"}
}

func market(id, name string) item { return item{"type": "MA", "ID": id, "NA": name} }

func outcome(rank, od string) item { return item{"type": "PA", "OR": rank, "OD": od} }

func TestParseInplay_FullStream(t *testing.T) {
	stream := []item{
		category("EPL"),
		event("151881156C1A_1_1", "Man Utd v Chelsea"),
		market("1777", "Fulltime Result"),
		outcome("0", "2.10"),
		outcome("1", "3.40"),
		outcome("2", "3.00"),
	}

	got := ParseInplay(mustRaw(t, stream))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}

	ev := got[0]
	if ev.Home != "Man Utd" || ev.Away != "Chelsea" {
		t.Errorf("bad team split: home=%q away=%q", ev.Home, ev.Away)
	}
	if ev.League != "EPL" || ev.SportID != 1 {
		t.Errorf("bad league/sport: league=%q sport=%d", ev.League, ev.SportID)
	}

	wantOdds := []Odd{{Name: "1", Value: "2.10"}, {Name: "X", Value: "3.40"}, {Name: "2", Value: "3.00"}}
	if !reflect.DeepEqual(ev.Odds, wantOdds) {
		t.Errorf("odds mismatch: got %v want %v", ev.Odds, wantOdds)
	}
}

func TestParseInplay_EmptyInput(t *testing.T) {
	if got := ParseInplay(mustRaw(t, []item{})); len(got) != 0 {
		t.Errorf("empty input must yield empty output, got %v", got)
	}
	if got := ParseInplay(nil); len(got) != 0 {
		t.Errorf("nil input must yield empty output, got %v", got)
	}
}

func TestParseInplay_OutcomeBeforeEvent(t *testing.T) {
	stream := []item{
		outcome("0", "2.10"),
		market("1777", "Fulltime Result"),
		outcome("1", "3.40"),
	}
	if got := ParseInplay(mustRaw(t, stream)); len(got) != 0 {
		t.Errorf("stray outcomes must be dropped, got %v", got)
	}
}

func TestParseInplay_DenylistedCategorySuppressesEvents(t *testing.T) {
	stream := []item{
		category("Esoccer Battle - 8 mins play"),
		event("900001C1A_1_1", "Milan (Kray) v Roma (Boki)"),
		market("1777", "Fulltime Result"),
		outcome("0", "1.50"),
		category("Serie A"),
		event("900002C1A_1_1", "Inter v Napoli"),
	}

	got := ParseInplay(mustRaw(t, stream))
	if len(got) != 1 {
		t.Fatalf("expected only the real match, got %d events", len(got))
	}
	if got[0].Name != "Inter v Napoli" {
		t.Errorf("wrong survivor: %q", got[0].Name)
	}
	// A cotação do evento suprimido não pode vazar pro próximo.
	if len(got[0].Odds) != 0 {
		t.Errorf("odds leaked from suppressed event: %v", got[0].Odds)
	}
}

func TestParseInplay_DenylistedEventName(t *testing.T) {
	stream := []item{
		category("Friendlies"),
		event("900003C1A_1_1", "Esoccer GT Leagues Arsenal v Spurs"),
	}
	if got := ParseInplay(mustRaw(t, stream)); len(got) != 0 {
		t.Errorf("denylisted event name must be filtered, got %v", got)
	}
}

func TestParseInplay_VirtualFlag(t *testing.T) {
	stream := []item{
		category("Serie A"),
		item{"type": "EV", "ID": "900004C1A_1_1", "NA": "Juve v Lazio", "VI": "1"},
	}
	if got := ParseInplay(mustRaw(t, stream)); len(got) != 0 {
		t.Errorf("VI=1 event must be filtered, got %v", got)
	}
}

func TestParseInplay_ExcludedSportCode(t *testing.T) {
	stream := []item{
		category("Greyhounds"),
		event("900005C7A_1_1", "Trap 1 v Trap 2"), // código 7 fora do conjunto
		market("1777", "Fulltime Result"),
		outcome("0", "1.10"),
	}
	if got := ParseInplay(mustRaw(t, stream)); len(got) != 0 {
		t.Errorf("excluded sport code must not be emitted, got %v", got)
	}
}

func TestParseInplay_SportCodeMapping(t *testing.T) {
	stream := []item{
		category("NHL"),
		event("900006C17A_1_1", "Bruins v Rangers"),
	}
	got := ParseInplay(mustRaw(t, stream))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].SportID != 4 {
		t.Errorf("feed code 17 must map to app sport 4, got %d", got[0].SportID)
	}
}

func TestParseInplay_OddsCappedAtThree(t *testing.T) {
	stream := []item{
		category("EPL"),
		event("900007C1A_1_1", "A v B"),
		market("1777", "Fulltime Result"),
		outcome("0", "2.00"),
		outcome("1", "3.00"),
		outcome("2", "4.00"),
		outcome("2", "5.00"),
		outcome("2", "6.00"),
	}
	got := ParseInplay(mustRaw(t, stream))
	if len(got) != 1 || len(got[0].Odds) != 3 {
		t.Fatalf("odds must cap at 3, got %v", got)
	}
	if got[0].Odds[2].Value != "4.00" {
		t.Errorf("first 3 outcomes must win, got %v", got[0].Odds)
	}
}

func TestParseInplay_NonResultMarketIgnored(t *testing.T) {
	stream := []item{
		category("EPL"),
		event("900008C1A_1_1", "A v B"),
		market("42", "Total Goals"),
		outcome("0", "1.90"),
	}
	got := ParseInplay(mustRaw(t, stream))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if len(got[0].Odds) != 0 {
		t.Errorf("non-result market odds must be ignored, got %v", got[0].Odds)
	}
}

func TestParseInplay_VsSplitAndFallback(t *testing.T) {
	stream := []item{
		category("ATP"),
		event("900009C13A_1_1", "Alcaraz VS Sinner"),
		event("900010C13A_1_1", "Davis Cup Doubles"),
	}
	got := ParseInplay(mustRaw(t, stream))
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Home != "Alcaraz" || got[0].Away != "Sinner" {
		t.Errorf("case-insensitive vs split failed: %+v", got[0])
	}
	if got[1].Home != "Davis Cup Doubles" || got[1].Away != "Unknown" {
		t.Errorf("split fallback failed: home=%q away=%q", got[1].Home, got[1].Away)
	}
}

func TestParseInplay_NestedResults(t *testing.T) {
	inner := []item{
		category("EPL"),
		event("900011C1A_1_1", "A v B"),
	}
	nested := []any{inner}
	got := ParseInplay(mustRaw(t, nested))
	if len(got) != 1 {
		t.Errorf("nested results[0] form must parse, got %d events", len(got))
	}
}

func TestParseInplay_NullFirstElementStaysFlat(t *testing.T) {
	raw := json.RawMessage(`[
		null,
		{"type":"CT","NA":"EPL"},
		{"type":"EV","ID":"900013C1A_1_1","NA":"A v B","SS":"1-0","TM":"45","TT":"1"}
	]`)
	got := ParseInplay(raw)
	if len(got) != 1 {
		t.Fatalf("null first element must not turn the stream into the nested form, got %d events", len(got))
	}
	if got[0].Home != "A" || got[0].Away != "B" {
		t.Errorf("teams = %q / %q", got[0].Home, got[0].Away)
	}
}

func TestParseInplay_UnknownAndMalformedRecords(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"??","NA":"noise"},
		{"type":123},
		"not-an-object",
		{"type":"CT","NA":"EPL"},
		{"type":"EV","ID":"900012C1A_1_1","NA":"A v B","TT":1}
	]`)
	got := ParseInplay(raw)
	if len(got) != 1 {
		t.Fatalf("unknown/malformed records must be no-ops, got %d events", len(got))
	}
	if got[0].TimeStatus != "1" {
		t.Errorf("numeric TT must decode as string, got %q", got[0].TimeStatus)
	}
}

func TestParseInplay_Deterministic(t *testing.T) {
	stream := []item{
		category("EPL"),
		event("900013C1A_1_1", "A v B"),
		market("1777", "Fulltime Result"),
		outcome("0", "2.00"),
		category("La Liga"),
		event("900014C1A_1_1", "C v D"),
	}
	raw := mustRaw(t, stream)

	first := ParseInplay(raw)
	second := ParseInplay(raw)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing must be deterministic for identical input")
	}
}

func TestParseInplay_AllEmittedSportsIncluded(t *testing.T) {
	stream := []item{
		category("Mixed"),
		event("1C1A", "A v B"),
		event("2C7A", "C v D"),
		event("3C18A", "E v F"),
		event("4C99A", "G v H"),
	}
	for _, ev := range ParseInplay(mustRaw(t, stream)) {
		code := ev.SportID
		// ids canônicos emitidos derivam apenas do conjunto incluído
		if code != 1 && code != 3 && code != 4 && code != 12 && code != 13 && code != 16 && code != 18 {
			t.Errorf("unexpected sport id in output: %d", code)
		}
	}
}
