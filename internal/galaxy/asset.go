package galaxy

// AssetStatus is the load state of an object's image
type AssetStatus string

const (
	AssetPending     AssetStatus = "pending"
	AssetLoaded      AssetStatus = "loaded"
	AssetPlaceholder AssetStatus = "placeholder"
)

// Asset walks the fallback chain thumbnail, original, placeholder.
// Failures only ever move forward along the chain.
type Asset struct {
	Candidates []string    `json:"candidates"`
	Current    int         `json:"current"`
	Status     AssetStatus `json:"status"`
	// Color is the placeholder fill, used once every candidate failed
	Color string `json:"color"`
}

func newAsset(src Source, color string) Asset {
	var candidates []string
	if src.Thumbnail != "" && src.Thumbnail != src.Original {
		candidates = append(candidates, src.Thumbnail)
	}
	if src.Original != "" {
		candidates = append(candidates, src.Original)
	}
	a := Asset{Candidates: candidates, Status: AssetPending, Color: color}
	if len(candidates) == 0 {
		a.Status = AssetPlaceholder
	}
	return a
}

// URL is the image currently requested, empty for a placeholder
func (a *Asset) URL() string {
	if a.Status == AssetPlaceholder || a.Current >= len(a.Candidates) {
		return ""
	}
	return a.Candidates[a.Current]
}

// Loaded marks url as loaded. Results for urls no longer requested are ignored.
func (a *Asset) Loaded(url string) bool {
	if a.Status != AssetPending || url != a.URL() {
		return false
	}
	a.Status = AssetLoaded
	return true
}

// Failed moves to the next candidate or to the placeholder.
// It reports whether the placeholder was reached.
func (a *Asset) Failed(url string) bool {
	if a.Status != AssetPending || url != a.URL() {
		return false
	}
	a.Current++
	if a.Current >= len(a.Candidates) {
		a.Status = AssetPlaceholder
		return true
	}
	return false
}
