package bandsintown

import (
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Params holds the query parameters of a request.
//
// Values may be strings, string slices (sent as repeated "key[]" pairs),
// time.Time values (sent as YYYY-MM-DD for the date keys) or any scalar
// that converts to a string, such as the int radius of a search.
type Params map[string]interface{}

// Parameter keys with special handling.
const (
	ParamAppID     = "app_id"
	ParamFormat    = "format"
	ParamDate      = "date"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
)

const (
	responseFormat = "json"
	dateLayout     = "2006-01-02"
)

type queryParameter struct {
	key   string
	value string
}

// Encode renders params into the query string sent with every request.
//
// A start_date/end_date pair collapses into a single "date" range. Date
// values are formatted as YYYY-MM-DD with any time of day dropped; strings
// pass through untouched. app_id and format=json are always added and
// override caller values of the same keys. Keys are sorted, values are form
// encoded (spaces become "+") and slices become repeated "key[]" pairs in
// their original order.
//
// params is never modified. ErrMissingAppID is returned when appID is empty.
//
// Example:
//
//	q, _ := bandsintown.Encode(bandsintown.Params{
//	    "artists":  []string{"Little Brother", "Joe Scudda"},
//	    "location": "Boston, MA",
//	}, "YOUR_APP_ID")
//	// app_id=YOUR_APP_ID&artists%5B%5D=Little+Brother&artists%5B%5D=Joe+Scudda&format=json&location=Boston%2C+MA
func Encode(params Params, appID string) (string, error) {
	if appID == "" {
		return "", ErrMissingAppID
	}

	merged := make(Params, len(params)+2)
	for k, v := range params {
		merged[k] = v
	}

	start, hasStart := merged[ParamStartDate]
	end, hasEnd := merged[ParamEndDate]
	if hasStart && hasEnd {
		delete(merged, ParamStartDate)
		delete(merged, ParamEndDate)
		date, err := dateRange(start, end)
		if err != nil {
			return "", err
		}
		merged[ParamDate] = date
	}

	merged[ParamAppID] = appID
	merged[ParamFormat] = responseFormat

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []queryParameter
	for _, k := range keys {
		v := merged[k]
		if isDateKey(k) {
			v = formatDate(v)
		}
		encoded, err := encodeValue(k, v)
		if err != nil {
			return "", err
		}
		parts = append(parts, encoded...)
	}

	return joinQuery(parts...), nil
}

func isDateKey(key string) bool {
	return key == ParamDate || key == ParamStartDate || key == ParamEndDate
}

// dateRange joins the two ends of a date range as "start,end".
func dateRange(start, end interface{}) (string, error) {
	from, err := cast.ToStringE(formatDate(start))
	if err != nil {
		return "", &EncodeError{Key: ParamStartDate, Value: start, Err: err}
	}
	to, err := cast.ToStringE(formatDate(end))
	if err != nil {
		return "", &EncodeError{Key: ParamEndDate, Value: end, Err: err}
	}
	return from + "," + to, nil
}

// formatDate renders time values as YYYY-MM-DD. Anything else, including
// malformed date strings, is returned unchanged.
func formatDate(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(dateLayout)
	default:
		return v
	}
}

// encodeValue turns one parameter into query pairs. Slices and arrays expand
// to "key[]" pairs; nil becomes an empty value.
func encodeValue(key string, v interface{}) ([]queryParameter, error) {
	if v == nil {
		return []queryParameter{{key: url.QueryEscape(key)}}, nil
	}

	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		seqKey := url.QueryEscape(key + "[]")
		if rv.Len() == 0 {
			return []queryParameter{{key: seqKey}}, nil
		}
		parts := make([]queryParameter, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := cast.ToStringE(rv.Index(i).Interface())
			if err != nil {
				return nil, &EncodeError{Key: key, Value: v, Err: err}
			}
			parts = append(parts, queryParameter{key: seqKey, value: url.QueryEscape(s)})
		}
		return parts, nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, &EncodeError{Key: key, Value: v, Err: err}
	}
	return []queryParameter{{key: url.QueryEscape(key), value: url.QueryEscape(s)}}, nil
}

func joinQuery(data ...queryParameter) string {
	parts := make([]string, 0, len(data))
	for _, p := range data {
		parts = append(parts, p.key+"="+p.value)
	}
	return strings.Join(parts, "&")
}
