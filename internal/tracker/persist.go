package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/daytally/internal/store"
	"github.com/sadopc/daytally/internal/timefmt"
)

// Storage is the key-value backend the interval mapping is written through.
// *store.Store satisfies it.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

var errUnknownLayout = errors.New("unrecognised interval layout")

// legacyState is the single-day object layout of earlier versions.
type legacyState struct {
	Intervals  []Interval `json:"intervals"`
	IsTracking bool       `json:"isTracking"`
}

// load reads the persisted mapping, migrating legacy layouts. Unparseable data
// is logged and replaced with an empty mapping; backend failures are returned.
func load(kv Storage) (Days, error) {
	raw, ok, err := kv.Get(store.KeyIntervals)
	if err != nil {
		return nil, fmt.Errorf("load intervals: %w", err)
	}
	if ok {
		days, migrated, err := decode(raw)
		if err != nil {
			log.Printf("tracker: discarding corrupt interval data: %v", err)
			return Days{}, nil
		}
		if migrated {
			if err := save(kv, days); err != nil {
				return nil, err
			}
		}
		return days, nil
	}

	raw, ok, err = kv.Get(store.KeyLegacyState)
	if err != nil {
		return nil, fmt.Errorf("load legacy state: %w", err)
	}
	if !ok {
		return Days{}, nil
	}

	days, _, err := decode(raw)
	if err != nil {
		log.Printf("tracker: discarding corrupt legacy state: %v", err)
		return Days{}, nil
	}
	if err := save(kv, days); err != nil {
		return nil, err
	}
	if err := kv.Delete(store.KeyLegacyState); err != nil {
		return nil, fmt.Errorf("drop legacy state: %w", err)
	}
	log.Printf("tracker: migrated %d legacy day(s)", len(days))
	return days, nil
}

// decode accepts the day-keyed mapping, a flat array of intervals, or the
// legacy state object. migrated reports whether a legacy form was seen.
func decode(raw string) (days Days, migrated bool, err error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "" || trimmed == "null":
		return Days{}, false, nil

	case strings.HasPrefix(trimmed, "["):
		var list []Interval
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, false, fmt.Errorf("decode interval list: %w", err)
		}
		return bucket(list), true, nil

	case strings.HasPrefix(trimmed, "{"):
		var probe map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
			return nil, false, fmt.Errorf("decode interval map: %w", err)
		}
		if _, ok := probe["intervals"]; ok {
			var st legacyState
			if err := json.Unmarshal([]byte(trimmed), &st); err != nil {
				return nil, false, fmt.Errorf("decode legacy state: %w", err)
			}
			return bucket(st.Intervals), true, nil
		}

		days = Days{}
		if err := json.Unmarshal([]byte(trimmed), &days); err != nil {
			return nil, false, fmt.Errorf("decode interval map: %w", err)
		}
		for key, list := range days {
			if _, err := timefmt.ParseDayKey(key); err != nil {
				return nil, false, err
			}
			days[key] = fillIDs(list)
		}
		return days, false, nil
	}
	return nil, false, errUnknownLayout
}

// bucket files each interval under the day-key of its start.
func bucket(list []Interval) Days {
	days := Days{}
	for _, iv := range fillIDs(list) {
		key := timefmt.DayKey(iv.StartTime())
		days[key] = append(days[key], iv)
	}
	return days
}

func fillIDs(list []Interval) []Interval {
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = uuid.NewString()
		}
	}
	return list
}

func save(kv Storage, days Days) error {
	data, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("encode intervals: %w", err)
	}
	if err := kv.Set(store.KeyIntervals, string(data)); err != nil {
		return fmt.Errorf("save intervals: %w", err)
	}
	return nil
}
