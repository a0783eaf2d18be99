package admin

// ResetRequest guards the reset against accidental calls
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// PruneRequest selects snapshots by age
type PruneRequest struct {
	MaxAge string `json:"maxAge" validate:"required"`
}

// PruneResponse lists removed gallery ids
type PruneResponse struct {
	Removed []string `json:"removed"`
	Count   int      `json:"count"`
}
