package tracker

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey returns the local calendar date of t as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Local().Format(dateKeyLayout)
}

// ValidDateKey reports whether key is a canonical "YYYY-MM-DD" date.
func ValidDateKey(key string) bool {
	d, err := time.Parse(dateKeyLayout, key)
	return err == nil && d.Format(dateKeyLayout) == key
}

// keyDate parses a date key as a UTC midnight so day arithmetic is free of
// DST shifts. Invalid keys yield the zero time.
func keyDate(key string) time.Time {
	d, _ := time.Parse(dateKeyLayout, key)
	return d
}

// shiftKey moves key by n calendar days.
func shiftKey(key string, n int) string {
	return keyDate(key).AddDate(0, 0, n).Format(dateKeyLayout)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b string) int {
	return int(keyDate(b).Sub(keyDate(a)).Hours() / 24)
}

// narrowWeekday returns the one-letter weekday of key ("M", "T", ...).
func narrowWeekday(key string) string {
	return keyDate(key).Weekday().String()[:1]
}

// DailySeries lays entries out one per calendar day, oldest first, from
// the earliest to the latest key. Days without an entry read as 0.
func DailySeries(entries []HistoryEntry) []HistoryEntry {
	if len(entries) == 0 {
		return nil
	}
	byKey := make(map[string]int, len(entries))
	first, last := entries[0].Key, entries[0].Key
	for _, e := range entries {
		byKey[e.Key] = e.Calories
		if e.Key < first {
			first = e.Key
		}
		if e.Key > last {
			last = e.Key
		}
	}

	n := daysBetween(first, last) + 1
	out := make([]HistoryEntry, n)
	for i := range out {
		k := shiftKey(first, i)
		out[i] = HistoryEntry{Key: k, Calories: byKey[k]}
	}
	return out
}
