package schedule

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// sessionizeDocument is the subset of the schedule source payload the
// server consumes. The raw document is stored untouched for clients; only
// these fields are normalized into session rows.
type sessionizeDocument struct {
	Sessions []sessionizeSession `json:"sessions"`
	Speakers []sessionizeSpeaker `json:"speakers"`
	Rooms    []sessionizeRoom    `json:"rooms"`
}

type sessionizeSession struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	StartsAt   *string  `json:"startsAt"`
	EndsAt     *string  `json:"endsAt"`
	RoomID     *int64   `json:"roomId"`
	SpeakerIDs []string `json:"speakers"`
}

type sessionizeSpeaker struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

type sessionizeRoom struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// parseSessions normalizes the raw schedule document into session rows.
// Zone-less timestamps are interpreted in loc (nil means UTC). Sessions
// with malformed timestamps keep a null start so the vote gate stays
// closed for them.
func parseSessions(raw []byte, loc *time.Location) ([]sessionRow, error) {
	var doc sessionizeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schedule document: %w", err)
	}

	speakerNames := make(map[string]string, len(doc.Speakers))
	for _, sp := range doc.Speakers {
		speakerNames[sp.ID] = sp.FullName
	}
	roomNames := make(map[int64]string, len(doc.Rooms))
	for _, r := range doc.Rooms {
		roomNames[r.ID] = r.Name
	}

	rows := make([]sessionRow, 0, len(doc.Sessions))
	for _, s := range doc.Sessions {
		if s.ID == "" {
			continue
		}
		row := sessionRow{id: s.ID, title: s.Title}

		if s.RoomID != nil {
			if name, ok := roomNames[*s.RoomID]; ok {
				row.room = sql.NullString{String: name, Valid: true}
			}
		}

		names := make([]string, 0, len(s.SpeakerIDs))
		for _, id := range s.SpeakerIDs {
			if name, ok := speakerNames[id]; ok {
				names = append(names, name)
			}
		}
		encoded, err := json.Marshal(names)
		if err != nil {
			return nil, fmt.Errorf("failed to encode speakers: %w", err)
		}
		row.speakers = string(encoded)

		row.startsAt = parseScheduleTime(s.StartsAt, loc)
		row.endsAt = parseScheduleTime(s.EndsAt, loc)

		rows = append(rows, row)
	}
	return rows, nil
}

type sessionRow struct {
	id       string
	title    string
	room     sql.NullString
	speakers string
	startsAt sql.NullTime
	endsAt   sql.NullTime
}

// scheduleTimeLayouts are the timestamp shapes the schedule source emits:
// conference-local times without zone designators, and full RFC 3339.
var scheduleTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseScheduleTime reads a schedule timestamp and stores it as UTC.
// Zone-less values are taken to be in loc; RFC 3339 values carry their
// own offset.
func parseScheduleTime(raw *string, loc *time.Location) sql.NullTime {
	if raw == nil || *raw == "" {
		return sql.NullTime{}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range scheduleTimeLayouts {
		if t, err := time.ParseInLocation(layout, *raw, loc); err == nil {
			return sql.NullTime{Time: t.UTC(), Valid: true}
		}
	}
	return sql.NullTime{}
}
