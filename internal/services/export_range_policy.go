package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange parses optional inclusive YYYY-MM-DD bounds.
func ParseExportRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	fromRaw := strings.TrimSpace(rawFrom)
	toRaw := strings.TrimSpace(rawTo)

	var from *time.Time
	if fromRaw != "" {
		parsedFrom, err := ParseDay(fromRaw)
		if err != nil {
			return nil, nil, ErrExportFromDateInvalid
		}
		from = &parsedFrom
	}

	var to *time.Time
	if toRaw != "" {
		parsedTo, err := ParseDay(toRaw)
		if err != nil {
			return nil, nil, ErrExportToDateInvalid
		}
		to = &parsedTo
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}

	return from, to, nil
}
