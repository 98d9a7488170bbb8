package entity

import "time"

// Unknown is the placeholder stored when a payload omits a field.
const Unknown = "unknown"

// Record is the normalized form of one accepted webhook delivery.
type Record struct {
	ID        ID        `json:"id"`
	Author    string    `json:"author"`
	PushedTo  string    `json:"pushed_to"`
	On        string    `json:"on"`
	Sample    string    `json:"sample"`
	Timestamp time.Time `json:"timestamp"`
}

// Document returns the record as the field map persisted by the store,
// without the identifier.
func (r *Record) Document() map[string]any {
	return map[string]any{
		"author":    r.Author,
		"pushed_to": r.PushedTo,
		"on":        r.On,
		"sample":    r.Sample,
		"timestamp": r.Timestamp,
	}
}
