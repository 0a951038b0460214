package team

import "strings"

// Resolver maps the free-form team labels a feed sends (full names,
// abbreviations, historical spellings) onto canonical keys. Resolution
// happens once at ingestion; scoring never re-parses team strings.
type Resolver struct {
	keyByLabel map[string]string
}

func NewResolver(teams []Team) *Resolver {
	keyByLabel := make(map[string]string, len(teams)*3)
	for _, item := range teams {
		if item.Key == "" {
			continue
		}
		keyByLabel[normalizeLabel(item.Key)] = item.Key
		keyByLabel[normalizeLabel(item.Name)] = item.Key
		keyByLabel[normalizeLabel(item.Abbreviation)] = item.Key
		for _, alt := range item.AltNames {
			keyByLabel[normalizeLabel(alt)] = item.Key
		}
	}
	delete(keyByLabel, "")

	return &Resolver{keyByLabel: keyByLabel}
}

func (r *Resolver) Resolve(label string) (string, bool) {
	key, ok := r.keyByLabel[normalizeLabel(label)]
	return key, ok
}

func normalizeLabel(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, ".", "")
	return strings.Join(strings.Fields(value), " ")
}
