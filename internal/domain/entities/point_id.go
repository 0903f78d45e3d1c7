package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// maxExactFloatID is the first integer a float64 cannot tell apart from its
// neighbor.
const maxExactFloatID = 1 << 53

// ParsePointID converts a decoded JSON value into a PointID.
// Integers must be non-negative; strings must be UUIDs or decimal integers.
// Numbers decoded as float64 must be below 2^53; larger ids are only exact
// as decimal strings.
func ParsePointID(raw any) (PointID, error) {
	switch v := raw.(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return PointID{}, fmt.Errorf("%w: point id %v must be a non-negative integer", ErrInvalidArgument, v)
		}
		if v >= maxExactFloatID {
			return PointID{}, fmt.Errorf("%w: point id %.0f is too large to be exact as a JSON number, send it as a decimal string",
				ErrInvalidArgument, v)
		}
		return NewNumericID(uint64(v)), nil
	case json.Number:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return PointID{}, fmt.Errorf("%w: point id %s must be a non-negative integer", ErrInvalidArgument, v)
		}
		return NewNumericID(n), nil
	case int:
		if v < 0 {
			return PointID{}, fmt.Errorf("%w: point id %d must be non-negative", ErrInvalidArgument, v)
		}
		return NewNumericID(uint64(v)), nil
	case int64:
		if v < 0 {
			return PointID{}, fmt.Errorf("%w: point id %d must be non-negative", ErrInvalidArgument, v)
		}
		return NewNumericID(uint64(v)), nil
	case uint64:
		return NewNumericID(v), nil
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return NewNumericID(n), nil
		}
		parsed, err := uuid.Parse(v)
		if err != nil {
			return PointID{}, fmt.Errorf("%w: point id %q is neither an unsigned integer nor a UUID", ErrInvalidArgument, v)
		}
		return NewUUIDID(parsed.String()), nil
	case nil:
		return PointID{}, fmt.Errorf("%w: point id is required", ErrInvalidArgument)
	default:
		return PointID{}, fmt.Errorf("%w: unsupported point id type %T", ErrInvalidArgument, raw)
	}
}

// ParsePointIDs converts a list of decoded JSON values into PointIDs.
func ParsePointIDs(raw []any) ([]PointID, error) {
	ids := make([]PointID, 0, len(raw))
	for _, r := range raw {
		id, err := ParsePointID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
