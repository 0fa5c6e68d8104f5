package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
)

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

func getOptionalQueryParam(r *http.Request, key string) *string {
	val := strings.TrimSpace(r.URL.Query().Get(key))
	if val == "" {
		return nil
	}
	return &val
}

// timeRangeParams reads optional "from" and "to" query parameters. Either may be
// epoch milliseconds or a date-time; a bare "to" date covers that whole day.
func timeRangeParams(r *http.Request, loc *time.Location) (from, to *time.Time, err error) {
	var errs validator.ValidationErrors

	if raw := getOptionalQueryParam(r, "from"); raw != nil {
		t, parseErr := timeutil.ToInstant(*raw, loc)
		if parseErr != nil {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be a date, date-time or epoch milliseconds"})
		} else {
			from = &t
		}
	}
	if raw := getOptionalQueryParam(r, "to"); raw != nil {
		t, parseErr := timeutil.ToInstant(*raw, loc)
		if parseErr != nil {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be a date, date-time or epoch milliseconds"})
		} else {
			if _, dateErr := timeutil.ParseDate(*raw, loc); dateErr == nil {
				t = timeutil.EndOfDay(t.In(loc)).UTC()
			}
			to = &t
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return from, to, nil
}
