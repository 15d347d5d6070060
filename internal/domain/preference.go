package domain

// PreferenceSet maps each preference kind to the option labels the user
// selected (e.g. KindAccommodation → ["Hotel de Luxo"]). Order is irrelevant.
// A missing or empty entry means the user expressed no preference and the
// category is left out of generated packages.
type PreferenceSet map[Kind][]string

// Options returns the labels stored for k, never nil.
func (p PreferenceSet) Options(k Kind) []string {
	if opts := p[k]; opts != nil {
		return opts
	}
	return []string{}
}

// Applied returns a copy keyed by field name with every preference kind
// present, suitable for echoing back in a package response.
func (p PreferenceSet) Applied() map[string][]string {
	out := make(map[string][]string, len(PreferenceKinds))
	for _, k := range PreferenceKinds {
		out[string(k)] = append([]string{}, p.Options(k)...)
	}
	return out
}
