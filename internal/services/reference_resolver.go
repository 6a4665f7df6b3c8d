package services

import (
	"strings"

	"asset-tracker/internal/entities"
)

// SyncReferences - справочники для синхронизации, ключи нормализованы normalizeKey.
// Структура сериализуется в кеш как JSON.
type SyncReferences struct {
	Categories map[string]entities.Category `json:"categories"`
	Types      map[string]string            `json:"types"`
	Companies  map[string]string            `json:"companies"`
	Owners     map[string]string            `json:"owners"`
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func typeKey(typeName, category string) string {
	return normalizeKey(typeName) + "|" + normalizeKey(category)
}

// Lookup возвращает код по ключу без учёта регистра или пустую строку.
func Lookup(table map[string]string, key string) string {
	return table[normalizeKey(key)]
}

func BuildSyncReferences(
	categories []entities.Category,
	types []entities.AssetType,
	companies []entities.Company,
	owners []entities.Owner,
) *SyncReferences {
	refs := &SyncReferences{
		Categories: make(map[string]entities.Category, len(categories)),
		Types:      make(map[string]string, len(types)),
		Companies:  make(map[string]string, len(companies)),
		Owners:     make(map[string]string, len(owners)),
	}
	for _, c := range categories {
		refs.Categories[normalizeKey(c.Name)] = c
	}
	for _, t := range types {
		refs.Types[typeKey(t.Name, t.Category)] = strings.TrimSpace(t.Code)
	}
	for _, c := range companies {
		refs.Companies[normalizeKey(c.Name)] = strings.TrimSpace(c.Code)
	}
	for _, o := range owners {
		refs.Owners[normalizeKey(o.Name)] = strings.TrimSpace(o.Code)
	}
	return refs
}

func (r *SyncReferences) Category(name string) (entities.Category, bool) {
	c, ok := r.Categories[normalizeKey(name)]
	return c, ok
}

func (r *SyncReferences) CategoryCode(name string) string {
	c, ok := r.Category(name)
	if !ok {
		return ""
	}
	return padCode(c.Code)
}

func (r *SyncReferences) TypeCode(typeName, category string) string {
	return padCode(r.Types[typeKey(typeName, category)])
}

func (r *SyncReferences) CompanyCode(name string) string {
	return Lookup(r.Companies, name)
}

func (r *SyncReferences) OwnerCode(name string) string {
	return Lookup(r.Owners, name)
}
