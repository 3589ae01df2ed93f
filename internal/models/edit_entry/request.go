package models

// EditEntryRequest carries only the fields the client actually changed;
// absent fields leave the session untouched. Mood is cleared by sending
// clearMood instead, since a null mood is indistinguishable from an omitted
// one in JSON.
type EditEntryRequest struct {
	Text      *string `json:"text"`
	Mood      *int    `json:"mood"`
	ClearMood bool    `json:"clearMood"`
	Color     *int    `json:"color"`
}
