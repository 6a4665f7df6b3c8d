package services

import (
	"fmt"
	"strings"
)

type TagCodes struct {
	Company  string
	Category string
	Type     string
	Owner    string
}

type tagKey struct {
	company string
	typ     string
	year    int
}

// TagGenerator выдаёт теги вида {company}-{category}{type}.{owner}{YY}.{NNN}.
// Счётчик ведётся по (company, type, year) в порядке вызовов, поэтому
// генератор живёт ровно один проход синхронизации.
type TagGenerator struct {
	counters map[tagKey]int
}

func NewTagGenerator() *TagGenerator {
	return &TagGenerator{counters: make(map[tagKey]int)}
}

// Next возвращает пустую строку, если хотя бы одного кода нет; счётчик при этом не растёт.
func (g *TagGenerator) Next(codes TagCodes, year int) string {
	if codes.Company == "" || codes.Category == "" || codes.Type == "" || codes.Owner == "" {
		return ""
	}

	category := padCode(codes.Category)
	typ := padCode(codes.Type)

	key := tagKey{company: codes.Company, typ: typ, year: year}
	g.counters[key]++

	return fmt.Sprintf("%s-%s%s.%s%02d.%03d", codes.Company, category, typ, codes.Owner, year%100, g.counters[key])
}

// padCode дополняет код нулями слева до двух символов: "5" -> "05", "123" без изменений.
func padCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= 2 {
		return code
	}
	return strings.Repeat("0", 2-len(code)) + code
}
