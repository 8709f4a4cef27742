package feed

import (
	"encoding/json"
	"regexp"
	"strings"
)

// sportCodeRe captura o classificador de esporte embutido no id do evento,
// ex: "151881156C1A_1_1" carrega o código 1.
var sportCodeRe = regexp.MustCompile(`C(\d+)A`)

// teamSplitRe separa "Home v Away" / "Home vs Away", sem case.
var teamSplitRe = regexp.MustCompile(`(?i)\s+vs?\s+`)

// resultMarketID é o mercado principal de resultado da partida no feed.
const resultMarketID = "1777"

const maxOddsPerEvent = 3

// ParseInplay percorre o stream hierárquico do fornecedor em uma única
// passada e emite os eventos normalizados na ordem em que aparecem.
//
// O stream intercala registros CT (liga), EV (partida), MA (mercado) e PA
// (cotação); cada registro vale até o próximo do mesmo tipo. Registros
// malformados ou de tipo desconhecido são ignorados. O parser não guarda
// estado entre chamadas.
func ParseInplay(results json.RawMessage) []MatchEvent {
	items := flatten(results)

	events := []MatchEvent{}
	var currentCategory string
	var currentEvent *MatchEvent
	var currentMarket *Record

	for _, raw := range items {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}

		switch rec.Type.String() {
		case recCategory:
			currentCategory = rec.NA.String()
			currentEvent = nil
			currentMarket = nil

		case recEvent:
			// Qualquer EV novo fecha o anterior; se for descartado,
			// PAs soltos não podem se pendurar no evento suprimido.
			currentEvent = nil
			currentMarket = nil

			code, ok := extractSportCode(rec.ID.String())
			if !ok {
				continue
			}
			if _, ok := includedSportCodes[code]; !ok {
				continue
			}
			if rec.VI.String() == "1" || isDenylisted(currentCategory) || isDenylisted(rec.NA.String()) {
				continue
			}

			home, away := splitTeams(rec.NA.String())
			league := currentCategory
			if league == "" {
				league = "Unknown League"
			}

			events = append(events, MatchEvent{
				ID:         rec.ID.String(),
				SportID:    canonicalSportID(code),
				League:     league,
				Home:       home,
				Away:       away,
				Name:       rec.NA.String(),
				Score:      orDefault(rec.SS.String(), "0-0"),
				Timer:      orDefault(rec.TM.String(), "0"),
				TimeStatus: orDefault(rec.TT.String(), "0"),
				Odds:       []Odd{},
			})
			currentEvent = &events[len(events)-1]

		case recMarket:
			if currentEvent != nil {
				m := rec
				currentMarket = &m
			}

		case recOutcome:
			if currentEvent == nil || currentMarket == nil {
				continue
			}
			if !isResultMarket(currentMarket) {
				continue
			}
			if len(currentEvent.Odds) >= maxOddsPerEvent {
				continue
			}
			currentEvent.Odds = append(currentEvent.Odds, Odd{
				Name:  outcomeLabel(rec.OR.String()),
				Value: rec.OD.String(),
			})
		}
	}

	return events
}

// flatten aceita o array de registros direto ou aninhado um nível
// (results[0]), conforme o endpoint.
func flatten(results json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(results, &items); err != nil || len(items) == 0 {
		return nil
	}

	// null como primeiro elemento também decodifica como slice (vazio);
	// só é aninhado se o primeiro elemento for um array com conteúdo
	var nested []json.RawMessage
	if err := json.Unmarshal(items[0], &nested); err == nil && len(nested) > 0 {
		return nested
	}
	return items
}

func extractSportCode(id string) (int, bool) {
	m := sportCodeRe.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	return atoiOr(m[1], 0), true
}

func splitTeams(name string) (home, away string) {
	parts := teamSplitRe.Split(name, 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return name, "Unknown"
}

func isResultMarket(m *Record) bool {
	if m.ID.String() == resultMarketID {
		return true
	}
	name := strings.ToLower(m.NA.String())
	return strings.Contains(name, "result") || strings.Contains(name, "winner")
}

// outcomeLabel traduz a posição do resultado para o rótulo 1X2.
func outcomeLabel(rank string) string {
	switch rank {
	case "0":
		return "1"
	case "1":
		return "X"
	default:
		return "2"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
