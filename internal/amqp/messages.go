package amqp

import (
	"encoding/json"
	"time"
)

// ReportSyncMessage asks a worker to recompute the daily report for one
// user-day. It carries only the (userKey, date) pair; the worker derives
// the report from current storage, so replays and duplicates are harmless.
type ReportSyncMessage struct {
	UserKey   string    `json:"userKey"`
	Date      time.Time `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportSyncMessage(userKey string, date time.Time) *ReportSyncMessage {
	return &ReportSyncMessage{
		UserKey:   userKey,
		Date:      date,
		Timestamp: time.Now(),
	}
}

func (m *ReportSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportSyncMessageFromJSON(data []byte) (*ReportSyncMessage, error) {
	var msg ReportSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
