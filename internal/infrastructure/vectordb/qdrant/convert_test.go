package qdrant

import (
	"encoding/json"
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

func TestPointIDConversion(t *testing.T) {
	ids := []entities.PointID{
		entities.NewNumericID(0),
		entities.NewNumericID(18446744073709551615),
		entities.NewUUIDID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26"),
	}
	for _, id := range ids {
		t.Run(id.String(), func(t *testing.T) {
			assert.Equal(t, id, fromPointID(toPointID(id)))
		})
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		check func(t *testing.T, v *pb.Value)
	}{
		{"nil", nil, func(t *testing.T, v *pb.Value) {
			_, ok := v.GetKind().(*pb.Value_NullValue)
			assert.True(t, ok)
		}},
		{"bool", true, func(t *testing.T, v *pb.Value) { assert.True(t, v.GetBoolValue()) }},
		{"string", "x", func(t *testing.T, v *pb.Value) { assert.Equal(t, "x", v.GetStringValue()) }},
		{"integral float", float64(12), func(t *testing.T, v *pb.Value) { assert.Equal(t, int64(12), v.GetIntegerValue()) }},
		{"fractional float", 1.5, func(t *testing.T, v *pb.Value) { assert.Equal(t, 1.5, v.GetDoubleValue()) }},
		{"json int", json.Number("9007199254740993"), func(t *testing.T, v *pb.Value) {
			assert.Equal(t, int64(9007199254740993), v.GetIntegerValue())
		}},
		{"json float", json.Number("2.25"), func(t *testing.T, v *pb.Value) { assert.Equal(t, 2.25, v.GetDoubleValue()) }},
		{"list", []any{"a", float64(1)}, func(t *testing.T, v *pb.Value) {
			items := v.GetListValue().GetValues()
			require.Len(t, items, 2)
			assert.Equal(t, "a", items[0].GetStringValue())
			assert.Equal(t, int64(1), items[1].GetIntegerValue())
		}},
		{"nested", map[string]any{"k": false}, func(t *testing.T, v *pb.Value) {
			assert.False(t, v.GetStructValue().GetFields()["k"].GetBoolValue())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := toValue(tt.in)
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

func TestToValue_Unsupported(t *testing.T) {
	_, err := toValue(struct{}{})
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = toPayload(map[string]any{"deep": []any{map[string]any{"f": func() {}}}})
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestPayloadRoundTrip(t *testing.T) {
	in := map[string]any{
		"text":  "hello",
		"count": float64(3),
		"score": 0.75,
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"ok": true, "none": nil},
	}

	pbPayload, err := toPayload(in)
	require.NoError(t, err)

	out := fromPayload(pbPayload)
	assert.Equal(t, "hello", out["text"])
	assert.Equal(t, int64(3), out["count"])
	assert.Equal(t, 0.75, out["score"])
	assert.Equal(t, []any{"a", "b"}, out["tags"])
	assert.Equal(t, map[string]any{"ok": true, "none": nil}, out["meta"])
}

func TestFromVectors(t *testing.T) {
	assert.Nil(t, fromVectors(nil))

	dense := &pb.VectorsOutput{VectorsOptions: &pb.VectorsOutput_Vector{
		Vector: &pb.VectorOutput{Vector: &pb.VectorOutput_Dense{Dense: &pb.DenseVector{Data: []float32{1, 2}}}},
	}}
	assert.Equal(t, []float32{1, 2}, fromVectors(dense))

	named := &pb.VectorsOutput{VectorsOptions: &pb.VectorsOutput_Vectors{
		Vectors: &pb.NamedVectorsOutput{Vectors: map[string]*pb.VectorOutput{
			"title": {Data: []float32{3}},
		}},
	}}
	assert.Equal(t, map[string][]float32{"title": {3}}, fromVectors(named))
}
