package qdrant

import (
	"encoding/json"
	"fmt"
	"math"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

func toPointID(id entities.PointID) *pb.PointId {
	if id.IsUUID {
		return &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id.UUID}}
	}
	return &pb.PointId{PointIdOptions: &pb.PointId_Num{Num: id.Num}}
}

func toPointIDs(ids []entities.PointID) []*pb.PointId {
	out := make([]*pb.PointId, 0, len(ids))
	for _, id := range ids {
		out = append(out, toPointID(id))
	}
	return out
}

func fromPointID(id *pb.PointId) entities.PointID {
	switch v := id.GetPointIdOptions().(type) {
	case *pb.PointId_Uuid:
		return entities.NewUUIDID(v.Uuid)
	case *pb.PointId_Num:
		return entities.NewNumericID(v.Num)
	default:
		return entities.PointID{}
	}
}

// fromVectors returns a []float32 for an unnamed vector, a map of name to
// []float32 for named vectors, or nil.
func fromVectors(v *pb.VectorsOutput) any {
	if vec := v.GetVector(); vec != nil {
		return denseData(vec)
	}
	if named := v.GetVectors().GetVectors(); len(named) > 0 {
		out := make(map[string][]float32, len(named))
		for name, vec := range named {
			out[name] = denseData(vec)
		}
		return out
	}
	return nil
}

// denseData reads the dense representation, falling back to the legacy flat
// field older servers fill in.
func denseData(v *pb.VectorOutput) []float32 {
	if dense := v.GetDense(); dense != nil {
		return dense.GetData()
	}
	return v.GetData()
}

// toPayload converts decoded JSON values into Qdrant payload values.
func toPayload(payload map[string]any) (map[string]*pb.Value, error) {
	out := make(map[string]*pb.Value, len(payload))
	for k, v := range payload {
		val, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("payload key %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// toValue converts one JSON value. Integral float64 values become integers so
// numeric ids and counts decoded from JSON keep their integer type.
func toValue(v any) (*pb.Value, error) {
	switch x := v.(type) {
	case nil:
		return &pb.Value{Kind: &pb.Value_NullValue{NullValue: pb.NullValue_NULL_VALUE}}, nil
	case bool:
		return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: x}}, nil
	case string:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: x}}, nil
	case int:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(x)}}, nil
	case int64:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: x}}, nil
	case float32:
		return toValue(float64(x))
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(x)}}, nil
		}
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: x}}, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: i}}, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %s", entities.ErrInvalidArgument, x)
		}
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: f}}, nil
	case []any:
		values := make([]*pb.Value, 0, len(x))
		for _, item := range x {
			val, err := toValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}, nil
	case []string:
		values := make([]any, len(x))
		for i, s := range x {
			values[i] = s
		}
		return toValue(values)
	case map[string]any:
		fields, err := toPayload(x)
		if err != nil {
			return nil, err
		}
		return &pb.Value{Kind: &pb.Value_StructValue{StructValue: &pb.Struct{Fields: fields}}}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported payload type %T", entities.ErrInvalidArgument, v)
	}
}

func fromPayload(payload map[string]*pb.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = fromValue(v)
	}
	return out
}

func fromValue(v *pb.Value) any {
	switch k := v.GetKind().(type) {
	case *pb.Value_BoolValue:
		return k.BoolValue
	case *pb.Value_IntegerValue:
		return k.IntegerValue
	case *pb.Value_DoubleValue:
		return k.DoubleValue
	case *pb.Value_StringValue:
		return k.StringValue
	case *pb.Value_ListValue:
		items := k.ListValue.GetValues()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, fromValue(item))
		}
		return out
	case *pb.Value_StructValue:
		return fromPayload(k.StructValue.GetFields())
	default:
		return nil
	}
}
