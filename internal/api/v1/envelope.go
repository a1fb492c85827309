package v1

import "encoding/json"

const (
	// ContextIRI is the JSON-LD context every Caliper 1.2 event must declare.
	ContextIRI = "http://purl.imsglobal.org/ctx/caliper/v1p2"

	// DataVersion is the envelope dataVersion literal for Caliper 1.2.
	DataVersion = "http://purl.imsglobal.org/ctx/caliper/v1p2"
)

// Envelope is the top-level Caliper submission unit.
//
// Data keeps every event as the exact bytes the sensor sent so that unknown
// keys survive storage, archival and webhook re-delivery untouched.
type Envelope struct {
	Sensor      string            `json:"sensor"`
	SendTime    string            `json:"sendTime"`
	DataVersion string            `json:"dataVersion"`
	Data        []json.RawMessage `json:"data"`
}

// Single builds a one-event envelope for re-delivery of data[i].
func (e *Envelope) Single(event json.RawMessage, sendTime string) *Envelope {
	return &Envelope{
		Sensor:      e.Sensor,
		SendTime:    sendTime,
		DataVersion: e.DataVersion,
		Data:        []json.RawMessage{event},
	}
}
