package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cybersoft/talentmatch/pkg/apperr"
)

// ParseRequest validates {"candidate": {...}, "job": {...}} and resolves the
// two ids. An id may be a JSON integer or a string holding one.
func ParseRequest(body []byte) (Request, error) {
	var in struct {
		Candidate json.RawMessage `json:"candidate"`
		Job       json.RawMessage `json:"job"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return Request{}, apperr.Wrap(apperr.ErrValidation, err, "Request body must be a JSON object")
	}

	candidateID, err := idField(in.Candidate, "candidate", "candidate_id")
	if err != nil {
		return Request{}, err
	}
	jobID, err := idField(in.Job, "job", "job_id")
	if err != nil {
		return Request{}, err
	}
	return Request{
		CandidateID: candidateID,
		JobID:       jobID,
		Candidate:   in.Candidate,
		Job:         in.Job,
	}, nil
}

func idField(obj json.RawMessage, name, key string) (int64, error) {
	if len(obj) == 0 || bytes.Equal(obj, []byte("null")) {
		return 0, apperr.New(apperr.ErrValidation, name+" is required")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return 0, apperr.Wrap(apperr.ErrValidation, err, name+" must be a JSON object")
	}
	raw, ok := fields[key]
	if !ok {
		return 0, apperr.New(apperr.ErrValidation, fmt.Sprintf("%s.%s is required", name, key))
	}
	id, err := ParseID(raw)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrValidation, err, fmt.Sprintf("%s.%s must be an integer", name, key))
	}
	return id, nil
}

// ParseID accepts 7, 7.0 and "7". Ids must be positive and fit in int64.
func ParseID(raw json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	var id int64
	switch x := v.(type) {
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil || f != math.Trunc(f) {
				return 0, fmt.Errorf("not an integer: %s", x)
			}
			// float64(math.MaxInt64) rounds up to 2^63
			if f >= 1<<63 || f < -(1<<63) {
				return 0, fmt.Errorf("out of range: %s", x)
			}
			n = int64(f)
		}
		id = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, err
		}
		id = n
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
	if id <= 0 {
		return 0, fmt.Errorf("must be positive: %d", id)
	}
	return id, nil
}
