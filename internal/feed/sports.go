package feed

import "strings"

// Esportes cobertos pela casa, pelo código interno do fornecedor.
var includedSportCodes = map[int]struct{}{
	1:  {}, // soccer
	3:  {}, // cricket
	4:  {}, // ice hockey
	12: {}, // american football
	13: {}, // tennis
	16: {}, // baseball
	17: {}, // ice hockey (código alternativo do feed)
	18: {}, // basketball
}

// sportCodeToID traduz o código do fornecedor para o id canônico do app.
// Códigos ausentes mapeiam por identidade.
var sportCodeToID = map[int]int{
	17: 4,
}

func canonicalSportID(code int) int {
	if id, ok := sportCodeToID[code]; ok {
		return id
	}
	return code
}

// Marcadores de ligas/eventos virtuais e de esports que nunca entram no
// catálogo ao vivo.
var denylist = []string{
	"esoccer",
	"ebasketball",
	"volta",
	"virtual",
	"srl",
}

func isDenylisted(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range denylist {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
