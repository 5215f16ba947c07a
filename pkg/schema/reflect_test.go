package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refund struct {
	RequestID string  `json:"requestId" jsonschema:"minLength=1"`
	Amount    float64 `json:"amount,omitempty" jsonschema:"minimum=0"`
	Reason    string  `json:"reason,omitempty" jsonschema:"enum=duplicate,enum=fraud"`
}

func TestFromType(t *testing.T) {
	s, err := FromType[refund]()
	require.NoError(t, err)
	assert.Equal(t, "refund.json", s.Name())

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "minimal", value: map[string]any{"requestId": "r1"}},
		{name: "all fields", value: map[string]any{"requestId": "r1", "amount": 2.5, "reason": "fraud"}},
		{name: "struct value", value: refund{RequestID: "r1", Amount: 3}},
		{name: "unknown property allowed", value: map[string]any{"requestId": "r1", "note": "x"}},
		{name: "missing required", value: map[string]any{"amount": 1}, wantErr: true},
		{name: "empty id", value: map[string]any{"requestId": ""}, wantErr: true},
		{name: "negative amount", value: map[string]any{"requestId": "r1", "amount": -1}, wantErr: true},
		{name: "enum", value: map[string]any{"requestId": "r1", "reason": "bored"}, wantErr: true},
		{name: "wrong type", value: map[string]any{"requestId": 7}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Parse(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "r1", got.(map[string]any)["requestId"])
		})
	}
}

func TestFromType_Strict(t *testing.T) {
	s := MustFromType[refund](Strict())

	_, err := s.Parse(map[string]any{"requestId": "r1"})
	require.NoError(t, err)
	_, err = s.Parse(map[string]any{"requestId": "r1", "note": "x"})
	assert.Error(t, err)
}

func TestFromType_NumbersKeptExact(t *testing.T) {
	s := MustFromType[refund]()

	got, err := s.Parse(map[string]any{"requestId": "r1", "amount": 10})
	require.NoError(t, err)
	assert.Equal(t, json.Number("10"), got.(map[string]any)["amount"])
}

func TestFromType_Registered(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{Key: RequestKey("RefundController_create"), Schema: MustFromType[refund]()})

	s, ok := reg.Get(RequestKey("RefundController_create"))
	require.True(t, ok)
	_, err := s.Parse(map[string]any{})
	assert.Error(t, err)
}
